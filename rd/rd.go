/*
Package rd implements a backtracking recursive-descent derivation engine.

The engine attempts to derive a grammar's start symbol from a token
sequence. Alternatives of a non-terminal are tried in declaration order;
on failure the token cursor is restored and the next alternative is tried.
Acceptance requires the complete token sequence to be consumed; a
structurally valid derivation with trailing tokens is a rejection.

Left recursion is not eliminated. A rule whose derivation re-enters the
same non-terminal at the same token position cannot make progress; the
engine detects this (and a general recursion depth bound) and reports it as
a NonProgress parse error instead of hanging. Setting the configuration
flag 'panic-on-nonprogress' turns this into a panic, for post-mortem
debugging of grammars.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package rd

import (
	"github.com/derivado/derivado"
	"github.com/derivado/derivado/grammar"
	"github.com/derivado/derivado/tree"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'derivado.parse'.
func tracer() tracing.Trace {
	return tracing.Select("derivado.parse")
}

// Parser is a backtracking recursive-descent parser for a fixed grammar.
// A Parser may be re-used for parsing multiple token sequences; it is not
// safe for concurrent use.
type Parser struct {
	g           *grammar.Grammar
	tokens      []derivado.Token
	path        map[pathKey]bool // non-terminals on the active derivation path, per position
	furthest    int              // furthest token position reached over all attempts
	depthLimit  int
	nonprogress bool
}

// pathKey identifies a derivation attempt: a non-terminal entered at a
// token position. Re-entering the same pair means no input was consumed in
// between.
type pathKey struct {
	sym string
	pos int
}

// NewParser creates a recursive-descent parser for a grammar.
func NewParser(g *grammar.Grammar) *Parser {
	return &Parser{g: g}
}

// Parse attempts to derive the grammar's start symbol covering the complete
// token sequence. On acceptance it returns the derivation tree; the tree is
// exclusively owned by the caller. On rejection it returns a *ParseError
// carrying the furthest token position reached during backtracking.
//
// Parse is a pure function of (tokens, grammar): it neither mutates the
// grammar nor keeps state across calls.
func (p *Parser) Parse(tokens []derivado.Token) (*tree.Node, error) {
	p.tokens = tokens
	p.path = map[pathKey]bool{}
	p.furthest = 0
	p.nonprogress = false
	// token count × alternatives bounds any derivation making progress
	p.depthLimit = (len(tokens) + 2) * (p.g.Size() + 2)
	start := p.g.StartSymbol()
	tracer().Debugf("deriving %v over %d tokens", start, len(tokens))
	for _, rule := range p.g.RulesFor(start.Name) {
		children, next, ok := p.matchSeq(rule, 0, 0)
		if p.nonprogress {
			return nil, p.stuck()
		}
		if !ok {
			continue
		}
		if next != len(tokens) { // trailing tokens are a rejection
			tracer().Debugf("alternative %v covers only %d of %d tokens", rule, next, len(tokens))
			continue
		}
		node := tree.NonTerm(start.Name, children, p.byteOffset(0))
		tracer().Infof("accepted, derivation covers %v", node.Extent)
		return node, nil
	}
	return nil, &ParseError{Kind: Rejected, Furthest: uint64(p.furthest)}
}

// derive attempts to derive a single symbol at token position pos. For a
// terminal this consumes one matching token; for a non-terminal the
// alternatives are tried in declaration order and the first success wins.
func (p *Parser) derive(sym *grammar.Symbol, pos int, depth int) (*tree.Node, int, bool) {
	if sym.IsTerminal() {
		if pos < len(p.tokens) && p.tokens[pos].Name == sym.Name {
			p.reached(pos + 1)
			return tree.Leaf(p.tokens[pos]), pos + 1, true
		}
		return nil, pos, false
	}
	if depth > p.depthLimit {
		tracer().Errorf("recursion depth limit exceeded at %v, position %d", sym, pos)
		p.nonprogress = true
		return nil, pos, false
	}
	key := pathKey{sym: sym.Name, pos: pos}
	if p.path[key] {
		tracer().Errorf("left-recursive re-entry of %v at position %d", sym, pos)
		p.nonprogress = true
		return nil, pos, false
	}
	p.path[key] = true
	defer delete(p.path, key)
	for _, rule := range p.g.RulesFor(sym.Name) {
		children, next, ok := p.matchSeq(rule, pos, depth)
		if p.nonprogress {
			return nil, pos, false
		}
		if ok {
			return tree.NonTerm(sym.Name, children, p.byteOffset(pos)), next, true
		}
	}
	return nil, pos, false
}

// matchSeq matches a rule's RHS symbol sequence against the token stream,
// starting at pos. On failure the cursor is discarded, which restores the
// caller's position (the cursor is passed by value).
func (p *Parser) matchSeq(rule *grammar.Rule, pos int, depth int) ([]*tree.Node, int, bool) {
	tracer().Debugf("trying %v @%d", rule, pos)
	children := make([]*tree.Node, 0, len(rule.RHS()))
	cursor := pos
	for _, sym := range rule.RHS() {
		node, next, ok := p.derive(sym, cursor, depth+1)
		if !ok {
			return nil, pos, false
		}
		children = append(children, node)
		cursor = next
	}
	return children, cursor, true
}

// reached records the furthest token position any attempt has consumed up
// to. This is advisory information for diagnostics only.
func (p *Parser) reached(pos int) {
	if pos > p.furthest {
		p.furthest = pos
	}
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

func (p *Parser) stuck() *ParseError {
	err := &ParseError{Kind: NonProgress, Furthest: uint64(p.furthest)}
	if gconf.GetBool("panic-on-nonprogress") {
		panic(`derivation cannot make progress.

Configuration flag panic-on-nonprogress is set to true. It is aimed at
helping to debug a grammar and do a post-mortem of why its derivation got
stuck, usually because of (direct or indirect) left recursion. If this is a
production environment and you did not expect this to panic, please unset
panic-on-nonprogress to its default (false).`)
	}
	return err
}

// Parse is a package-level convenience: it derives g's start symbol over
// tokens with a one-shot parser.
func Parse(tokens []derivado.Token, g *grammar.Grammar) (*tree.Node, error) {
	return NewParser(g).Parse(tokens)
}
