/*
Package earley implements an Earley chart parser.

Contrary to the recursive-descent engine of package rd, the chart parser
accepts every context-free grammar, including left-recursive ones, without
a non-progress guard. Ambiguity is resolved by declaration order: the first
item completed for a span wins, so earlier alternatives take precedence.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package earley

import (
	"fmt"

	"github.com/derivado/derivado"
	"github.com/derivado/derivado/grammar"
	"github.com/derivado/derivado/tree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'derivado.parse'.
func tracer() tracing.Trace {
	return tracing.Select("derivado.parse")
}

// ParseError is the rejection signal of the chart parser. Furthest is the
// last token position for which the chart contains items, i.e. the furthest
// position any partial derivation reached.
type ParseError struct {
	Furthest uint64
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("input rejected (furthest token position reached: %d)", e.Furthest)
}

// Parser is an Earley parser for a fixed grammar. A Parser may be re-used
// for multiple token sequences; it is not safe for concurrent use.
type Parser struct {
	g      *grammar.Grammar
	tokens []derivado.Token
	chart  []*state
}

// NewParser creates an Earley parser for a grammar.
func NewParser(g *grammar.Grammar) *Parser {
	return &Parser{g: g}
}

// Parse runs the recognizer over the token sequence. Acceptance requires a
// completed derivation of the grammar's start symbol covering all tokens;
// on acceptance the derivation tree is returned, on rejection a
// *ParseError. Like the rd engine, Parse is a pure function of
// (tokens, grammar).
func (p *Parser) Parse(tokens []derivado.Token) (*tree.Node, error) {
	p.tokens = tokens
	n := len(tokens)
	p.chart = make([]*state, n+1)
	for i := range p.chart {
		p.chart[i] = newState()
	}
	start := p.g.StartSymbol()
	for _, rule := range p.g.RulesFor(start.Name) { // initial prediction
		p.chart[0].add(&item{rule: rule, origin: 0})
	}
	for i := 0; i <= n; i++ {
		for j := 0; j < p.chart[i].size(); j++ { // states grow while being processed
			it := p.chart[i].at(j)
			if it.completed() {
				p.complete(it, i)
				continue
			}
			sym := it.nextSymbol()
			if !sym.IsTerminal() {
				p.predict(it, sym, i)
			} else if i < n && tokens[i].Name == sym.Name {
				p.scan(it, i)
			}
		}
		dumpState(p.chart, i)
	}
	for j := 0; j < p.chart[n].size(); j++ {
		it := p.chart[n].at(j)
		if it.rule.LHS == start && it.completed() && it.origin == 0 {
			tracer().Infof("accepted by item %v", it)
			return it.node(p.byteOffset(0)), nil
		}
	}
	return nil, &ParseError{Furthest: p.furthest()}
}

// predict adds all alternatives of a non-terminal to the current state. For
// a nullable non-terminal the predicting item is advanced directly over an
// epsilon derivation: completion alone cannot do this, since an item added
// after the nullable symbol's epsilon item was processed would wait forever
// on a prediction the state has already deduplicated.
func (p *Parser) predict(it *item, sym *grammar.Symbol, pos int) {
	for _, rule := range p.g.RulesFor(sym.Name) {
		p.chart[pos].add(&item{rule: rule, origin: pos})
	}
	if p.g.DerivesEpsilon(sym) {
		p.chart[pos].add(it.advance(p.epsilonTree(sym, pos)))
	}
}

// scan advances an item over a matching input token into the next state.
func (p *Parser) scan(it *item, pos int) {
	p.chart[pos+1].add(it.advance(tree.Leaf(p.tokens[pos])))
}

// complete advances every item of the origin state which waits for the
// symbol the completed item just derived.
func (p *Parser) complete(completed *item, pos int) {
	origin := p.chart[completed.origin]
	node := completed.node(p.byteOffset(completed.origin))
	for j := 0; j < origin.size(); j++ {
		it := origin.at(j)
		if !it.completed() && it.nextSymbol() == completed.rule.LHS {
			p.chart[pos].add(it.advance(node))
		}
	}
}

// epsilonTree builds the derivation tree witnessing that a nullable
// non-terminal derives the empty sequence, using the first all-nullable
// alternative of every symbol along the way. The tree carries empty spans
// at the byte offset of token position pos.
func (p *Parser) epsilonTree(sym *grammar.Symbol, pos int) *tree.Node {
	return p.nullDerivation(sym, p.byteOffset(pos), map[string]bool{})
}

func (p *Parser) nullDerivation(sym *grammar.Symbol, at uint64, path map[string]bool) *tree.Node {
	path[sym.Name] = true
	defer delete(path, sym.Name)
	for _, rule := range p.g.RulesFor(sym.Name) {
		usable := true
		for _, rhsym := range rule.RHS() {
			if rhsym.IsTerminal() || path[rhsym.Name] || !p.g.DerivesEpsilon(rhsym) {
				usable = false
				break
			}
		}
		if !usable {
			continue
		}
		var children []*tree.Node
		for _, rhsym := range rule.RHS() {
			children = append(children, p.nullDerivation(rhsym, at, path))
		}
		return tree.NonTerm(sym.Name, children, at)
	}
	return tree.NonTerm(sym.Name, nil, at)
}

// byteOffset maps a token index to the input byte offset where it starts,
// used for the extents of epsilon-derivations.
func (p *Parser) byteOffset(pos int) uint64 {
	if pos < len(p.tokens) {
		return p.tokens[pos].Span.From()
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1].Span.To()
	}
	return 0
}

// furthest returns the last token position any partial derivation reached.
func (p *Parser) furthest() uint64 {
	for i := len(p.chart) - 1; i > 0; i-- {
		if p.chart[i].size() > 0 {
			return uint64(i)
		}
	}
	return 0
}

// Parse is a package-level convenience: it derives g's start symbol over
// tokens with a one-shot parser.
func Parse(tokens []derivado.Token, g *grammar.Grammar) (*tree.Node, error) {
	return NewParser(g).Parse(tokens)
}
