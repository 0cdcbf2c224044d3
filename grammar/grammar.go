package grammar

import (
	"fmt"
	"strings"
)

// --- Symbols ----------------------------------------------------------------

// Symbol is a grammar symbol, either a terminal (with an associated pattern)
// or a non-terminal (with associated rules). Symbols are interned: within one
// grammar there is exactly one *Symbol per name, so symbols may be compared
// by pointer identity.
type Symbol struct {
	Name     string
	terminal bool
}

// IsTerminal returns true if this symbol represents a terminal.
func (s *Symbol) IsTerminal() bool {
	return s.terminal
}

func (s *Symbol) String() string {
	return s.Name
}

// --- Rules ------------------------------------------------------------------

// Rule is a single production alternative
//
//    LHS → X1 … Xn
//
// with X1…Xn being terminal or non-terminal symbol references. An empty RHS
// denotes an epsilon-production. Rules are numbered in declaration order;
// this order is the tie-break for every derivation strategy in this module.
type Rule struct {
	Serial int     // rule number in declaration order
	LHS    *Symbol // left-hand side symbol
	rhs    []*Symbol
}

// RHS returns the right-hand side symbols of a rule.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEps returns true if this is an epsilon-rule, i.e. with an empty RHS.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	rhs := make([]string, len(r.rhs))
	for i, sym := range r.rhs {
		rhs[i] = sym.Name
	}
	return fmt.Sprintf("%s ::= [%s]", r.LHS.Name, strings.Join(rhs, " "))
}

// --- Grammar ----------------------------------------------------------------

// Grammar is the read-only in-memory representation of a context-free
// grammar: an ordered set of terminal patterns plus an ordered set of
// production rules, with a distinguished start symbol. Construct one with a
// Builder or with Load; it is immutable thereafter.
type Grammar struct {
	Name     string  // a grammar may be given a name, for documentation purposes
	rules    []*Rule // in declaration order
	symbols  map[string]*Symbol
	symlist  []*Symbol // symbols in order of first occurrence
	patterns []*Pattern
	patmap   map[string]*Pattern
	start    *Symbol
}

// StartSymbol returns the distinguished start symbol of the grammar.
func (g *Grammar) StartSymbol() *Symbol {
	return g.start
}

// Symbol returns the symbol with a given name, or nil if the grammar does
// not contain it.
func (g *Grammar) Symbol(name string) *Symbol {
	return g.symbols[name]
}

// Rule returns the rule with a given serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Size returns the number of rules in the grammar.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// RulesFor returns all alternatives for a non-terminal, in declaration
// order. It returns nil for terminals and unknown symbols.
func (g *Grammar) RulesFor(name string) []*Rule {
	var alts []*Rule
	for _, r := range g.rules {
		if r.LHS.Name == name {
			alts = append(alts, r)
		}
	}
	return alts
}

// PatternFor returns the terminal pattern declared for a terminal name, or
// nil if there is none.
func (g *Grammar) PatternFor(name string) *Pattern {
	return g.patmap[name]
}

// Patterns returns all terminal patterns in declaration order.
func (g *Grammar) Patterns() []*Pattern {
	return g.patterns
}

// EachSymbol iterates over all symbols of the grammar, in order of first
// occurrence. Iteration stops if the mapper function returns a non-nil
// value, which is then returned.
func (g *Grammar) EachSymbol(f func(*Symbol) interface{}) interface{} {
	for _, sym := range g.symlist {
		if v := f(sym); v != nil {
			return v
		}
	}
	return nil
}

// EachNonTerminal iterates over all non-terminal symbols of the grammar.
func (g *Grammar) EachNonTerminal(f func(*Symbol) interface{}) interface{} {
	return g.EachSymbol(func(sym *Symbol) interface{} {
		if sym.IsTerminal() {
			return nil
		}
		return f(sym)
	})
}

// Dump is a debugging helper, printing out the grammar in diagnostic format.
func (g *Grammar) Dump() {
	tracer().Debugf("==== %s =========================", g.Name)
	tracer().Debugf("start symbol: %v", g.start)
	for _, p := range g.patterns {
		tracer().Debugf("%s: %s", p.Name, p.Decl)
	}
	for _, r := range g.rules {
		tracer().Debugf("%2d: %v", r.Serial, r)
	}
	tracer().Debugf("=================================")
}
