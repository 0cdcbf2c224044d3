/*
Package grammar implements the in-memory model for context-free grammars,
consisting of terminal patterns and production rules.

Building a Grammar

Grammars are specified using a grammar builder object. Clients declare
terminal patterns and add rules, consisting of non-terminal and terminal
symbol references. Grammars may contain epsilon-productions.

Example:

    b := grammar.NewBuilder("Expressions")
    b.Pattern("num", "[0-9]+")
    b.Pattern("op_suma", "+|-")
    b.LHS("expr").N("term").T("op_suma").N("expr").End() // expr → term op_suma expr
    b.LHS("expr").N("term").End()                        // expr → term
    b.LHS("term").T("num").End()                         // term → num
    g, err := b.Grammar()

Alternatively a grammar may be loaded from its textual format, where the
same grammar reads

    num: [0-9]+
    op_suma: +|-
    expr -> term op_suma expr | term
    term -> num

The start symbol is the LHS of the first production, unless explicitly
designated with a %start directive.

The model is immutable after construction and exposes read-only lookup
only: RulesFor, PatternFor, StartSymbol.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'derivado.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("derivado.grammar")
}
