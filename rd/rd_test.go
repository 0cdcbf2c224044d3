package rd

import (
	"testing"

	"github.com/derivado/derivado"
	"github.com/derivado/derivado/grammar"
	"github.com/derivado/derivado/scanner"
	"github.com/derivado/derivado/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// A right-recursive expression grammar with operator precedence. Recursive
// descent cannot handle the left-recursive variant; see package earley for
// that one.
const exprGrammarText = `
num: [0-9]+
op_suma: +|-
op_mul: *|/
pari: (
pard: )
expr -> term op_suma expr | term
term -> factor op_mul term | factor
factor -> num | pari expr pard
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
	"1", "1+2", "1*2", "1+2*3", "1*(2+3)", "1+2+3+4", "1*2+3*4",
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

func TestPrecedenceTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// 3*4 has to be grouped under a term node nested inside the '+' at the
	// expr level, with 2 as the left operand
	g := makeGrammar(t)
	node, err := parseInput(t, g, "2+3*4")
	if err != nil {
		t.Fatalf("Valid input string not accepted: %v", err)
	}
	want := "(expr (term (factor (num '2'))) (op_suma '+') " +
		"(expr (term (factor (num '3')) (op_mul '*') (term (factor (num '4'))))))"
	if got := tree.BracketString(node); got != want {
		t.Errorf("Unexpected derivation tree:\ngot  %s\nwant %s", got, want)
	}
}

func TestRejection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// lexing succeeds on '2+*3', but no alternative accounts for op_mul
	// immediately following op_suma
	g := makeGrammar(t)
	_, err := parseInput(t, g, "2+*3")
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != Rejected {
		t.Fatalf("Expected a rejection, got %v", err)
	}
	if perr.Furthest != 2 { // num and op_suma were consumed
		t.Errorf("Expected furthest position 2, got %d", perr.Furthest)
	}
}

func TestTrailingTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// '2)' derives expr over its first token only; full coverage is
	// required for acceptance
	g := makeGrammar(t)
	_, err := parseInput(t, g, "2)")
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != Rejected {
		t.Errorf("Expected trailing tokens to be rejected, got %v", err)
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
	// a grammar whose start symbol derives epsilon accepts the empty input
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
	if len(node.Children) != 0 || node.Sym != "S" {
		t.Errorf("Unexpected epsilon derivation: %v", node)
	}
}

func TestLeftRecursionGuard(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	b := grammar.NewBuilder("G")
	b.Pattern("num", "[0-9]+")
	b.LHS("E").N("E").T("num").End()
	b.LHS("E").T("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	tokens, err := scanner.Tokenize("1 2", g)
	if err != nil {
		t.Fatalf("unexpected lexical error: %v", err)
	}
	_, err = Parse(tokens, g)
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != NonProgress {
		t.Errorf("Expected a NonProgress error for left-recursive grammar, got %v", err)
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

func TestEpsilonInDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	// sign is optional via an epsilon alternative
	b := grammar.NewBuilder("G")
	b.Pattern("minus", "-")
	b.Pattern("num", "[0-9]+")
	b.LHS("S").N("sign").T("num").End()
	b.LHS("sign").T("minus").End()
	b.LHS("sign").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	for _, input := range []string{"-7", "7"} {
		tokens, err := scanner.Tokenize(input, g)
		if err != nil {
			t.Fatalf("unexpected lexical error: %v", err)
		}
		node, err := Parse(tokens, g)
		if err != nil {
			t.Errorf("Valid input string not accepted: '%s' (%v)", input, err)
			continue
		}
		if len(node.Children) != 2 {
			t.Errorf("Expected S to have 2 children for '%s', got %d", input, len(node.Children))
		}
	}
}

func TestTokenSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "derivado.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	node, err := parseInput(t, g, "10+20")
	if err != nil {
		t.Fatalf("Valid input string not accepted: %v", err)
	}
	if node.Extent != (derivado.Span{0, 5}) {
		t.Errorf("Expected tree to cover input span (0…5), got %v", node.Extent)
	}
}
