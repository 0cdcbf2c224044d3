package earley

import (
	"testing"

	"github.com/derivado/derivado/grammar"
	"github.com/derivado/derivado/scanner"
	"github.com/derivado/derivado/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The classic left-recursive expression grammar. The chart parser handles
// left recursion natively, no rewriting required.
const exprGrammarText = `
num: [0-9]+
op_suma: +|-
op_mul: *|/
pari: (
pard: )
E -> E op_suma T | T
T -> T op_mul F | F
F -> num | pari E pard
`

func makeGrammar(t *testing.T) *grammar.Grammar {
	g, err := grammar.LoadString("expr", exprGrammarText)
	if err != nil {
		t.Fatalf("cannot load grammar: %v", err)
	}
	return g
}

func parseInput(t *testing.T, g *grammar.Grammar, input string) (*tree.Node, error) {
	tokens, err := scanner.Tokenize(input, g)
	if err != nil {
		t.Fatalf("unexpected lexical error: %v", err)
	}
	return Parse(tokens, g)
}

var inputStrings = []string{
	"1", "1+2", "1*2", "1+2*3", "1*(2+3)", "1+2+3+4", "((1))",
}

func TestParser1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	for n, input := range inputStrings {
		tracer().Infof("=== '%s' ========================", input)
		node, err := parseInput(t, g, input)
		if err != nil {
			t.Errorf("Valid input string #%d not accepted: '%s' (%v)", n+1, input, err)
		} else if node == nil {
			t.Errorf("Expected a derivation tree for '%s'", input)
		}
	}
}

func TestLeftAssociativity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// left recursion groups to the left: 3*4 under T, 2 as the left E operand
	g := makeGrammar(t)
	node, err := parseInput(t, g, "2+3*4")
	if err != nil {
		t.Fatalf("Valid input string not accepted: %v", err)
	}
	want := "(E (E (T (F (num '2')))) (op_suma '+') " +
		"(T (T (F (num '3'))) (op_mul '*') (F (num '4'))))"
	if got := tree.BracketString(node); got != want {
		t.Errorf("Unexpected derivation tree:\ngot  %s\nwant %s", got, want)
	}
}

func TestRejection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	_, err := parseInput(t, g, "2+*3")
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Expected a rejection, got %v", err)
	}
	if perr.Furthest != 2 { // num and op_suma were scanned
		t.Errorf("Expected furthest position 2, got %d", perr.Furthest)
	}
}

func TestTrailingTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	if _, err := parseInput(t, g, "2)"); err == nil {
		t.Errorf("Expected trailing tokens to be rejected")
	}
}

func TestEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	if _, err := Parse(nil, g); err == nil {
		t.Errorf("Expected empty input to be rejected")
	}
	// a nullable start symbol accepts the empty input
	b := grammar.NewBuilder("G")
	b.Pattern("a", "a")
	b.LHS("S").T("a").N("S").End()
	b.LHS("S").Epsilon()
	eg, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	node, err := Parse(nil, eg)
	if err != nil {
		t.Fatalf("Expected empty input to be accepted, got %v", err)
	}
	if node.Sym != "S" || len(node.Children) != 0 {
		t.Errorf("Unexpected epsilon derivation: %v", node)
	}
}

func TestNullableCompletion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// the nullable non-terminal has to complete within the state it was
	// predicted in
	b := grammar.NewBuilder("G")
	b.Pattern("x", "x")
	b.LHS("S").N("A").T("x").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	node, err := parseInput(t, g, "x")
	if err != nil {
		t.Fatalf("Valid input string not accepted: %v", err)
	}
	if got := tree.BracketString(node); got != "(S (A ε) (x 'x'))" {
		t.Errorf("Unexpected derivation tree: %s", got)
	}
}

func TestChainedNullables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// B waits for the nullable N, and S in turn waits for N only after B
	// has completed; both have to advance over the epsilon derivation
	b := grammar.NewBuilder("G")
	b.Pattern("x", "x")
	b.LHS("S").N("B").N("N").End()
	b.LHS("B").N("N").End()
	b.LHS("N").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	if !g.DerivesEpsilon(g.StartSymbol()) {
		t.Fatalf("Expected S to derive epsilon")
	}
	node, err := Parse(nil, g)
	if err != nil {
		t.Fatalf("Expected empty input to be accepted, got %v", err)
	}
	if got := tree.BracketString(node); got != "(S (B (N ε)) (N ε))" {
		t.Errorf("Unexpected derivation tree: %s", got)
	}
}

func TestChainedNullablesMidInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	b := grammar.NewBuilder("G")
	b.Pattern("x", "x")
	b.LHS("S").N("B").N("N").T("x").End()
	b.LHS("B").N("N").End()
	b.LHS("N").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	node, err := parseInput(t, g, "x")
	if err != nil {
		t.Fatalf("Valid input string not accepted: %v", err)
	}
	if got := tree.BracketString(node); got != "(S (B (N ε)) (N ε) (x 'x'))" {
		t.Errorf("Unexpected derivation tree: %s", got)
	}
}

func TestEpsilonInDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// an epsilon derivation after a consumed token carries its empty span
	// at the derivation position, not at the input start
	b := grammar.NewBuilder("G")
	b.Pattern("x", "x")
	b.LHS("S").T("x").N("A").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	node, err := parseInput(t, g, "x")
	if err != nil {
		t.Fatalf("Valid input string not accepted: %v", err)
	}
	if len(node.Children) != 2 {
		t.Fatalf("Expected S to have 2 children, got %d", len(node.Children))
	}
	eps := node.Children[1]
	if eps.Extent.From() != 1 || eps.Extent.Len() != 0 {
		t.Errorf("Expected empty span at position 1 for the epsilon derivation, got %v", eps.Extent)
	}
}

func TestAmbiguityTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// both alternatives derive 'a'; the first-declared one has to win
	b := grammar.NewBuilder("G")
	b.Pattern("a", "a")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("a").End()
	b.LHS("B").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	node, err := parseInput(t, g, "a")
	if err != nil {
		t.Fatalf("Valid input string not accepted: %v", err)
	}
	if got := tree.BracketString(node); got != "(S (A (a 'a')))" {
		t.Errorf("Expected the first-declared alternative to win, got %s", got)
	}
}

func TestDeepNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	node, err := parseInput(t, g, "((((7))))")
	if err != nil {
		t.Fatalf("Valid input string not accepted: %v", err)
	}
	// each paren layer contributes E, T, F plus two leaves; the innermost
	// chain is E, T, F plus the num leaf
	if node.Size() != 24 {
		t.Errorf("Expected a tree of 24 nodes, got %d:\n%s", node.Size(),
			tree.IndentedString(node))
	}
	if node.Extent.Len() != 9 {
		t.Errorf("Expected tree to cover 9 input bytes, got %d", node.Extent.Len())
	}
}

func TestIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	tokens, err := scanner.Tokenize("1*(2+3)", g)
	if err != nil {
		t.Fatalf("unexpected lexical error: %v", err)
	}
	p := NewParser(g)
	first, err1 := p.Parse(tokens)
	second, err2 := p.Parse(tokens)
	if err1 != nil || err2 != nil {
		t.Fatalf("Valid input string not accepted: %v/%v", err1, err2)
	}
	if tree.BracketString(first) != tree.BracketString(second) {
		t.Errorf("Expected repeated parses to yield isomorphic trees")
	}
}
