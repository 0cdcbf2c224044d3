package derivado

import "fmt"

// --- Tokens -----------------------------------------------------------------

// Token is a classified piece of input. Tokens are produced by a scanner in
// left-to-right order and reflect terminals of a grammar. They are immutable
// once created.
//
// An example would be a token for an addition operator:
//
//    Name   = "op_suma"   // terminal category, as declared by the grammar
//    Lexeme = "+"         // lexeme how it appeared in the input string
//    Span   = 2…3         // occurred at position 2 of the input string
//
type Token struct {
	Name   string // terminal category this token belongs to
	Lexeme string // matched input text
	Span   Span   // input positions covered by the lexeme
}

// MakeToken creates a token for terminal category name, covering
// input positions from…from+len(lexeme).
func MakeToken(name, lexeme string, from uint64) Token {
	return Token{
		Name:   name,
		Lexeme: lexeme,
		Span:   Span{from, from + uint64(len(lexeme))},
	}
}

func (t Token) String() string {
	return fmt.Sprintf("(%s,%q)", t.Name, t.Lexeme)
}

// TokenRetriever is a type for getting tokens at an input position.
// Scanner/parser combinations will usually keep track of input tokens, but
// this is not a must. Factoring it out into a type helps model this
// design-decision.
type TokenRetriever func(uint64) Token

// --- Spans ------------------------------------------------------------------

// Span is a small type for capturing a length of input run. For every
// terminal and non-terminal, a derivation tree will track which input
// positions this symbol covers. A span denotes a start position and the
// position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
