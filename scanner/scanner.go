/*
Package scanner converts input strings into token sequences, driven by the
terminal patterns declared in a grammar.

The default scanner tries every declared pattern at the current input
position, in declaration order, and lets the first non-empty prefix match
win. No longest-match heuristic is applied beyond the greediness of the
patterns themselves; ties go to the earlier declaration. Whitespace between
tokens is skipped, unless whitespace is matched by a declared terminal.

Sub-package lexmach provides an alternative scanner backed by a lexmachine
DFA, for grammars where maximal-munch scanning is acceptable.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/derivado/derivado"
	"github.com/derivado/derivado/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'derivado.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("derivado.scanner")
}

// EOF is the terminal name of the pseudo-token returned at end of input.
const EOF = "#eof"

// Tokenizer is a scanner interface: a stream of tokens, terminated by a
// token named EOF.
type Tokenizer interface {
	NextToken() derivado.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// LexError is returned when no terminal pattern matches at an input
// position. The tokens recognized up to that point are retained for
// diagnostic display; they are not usable for parsing.
type LexError struct {
	Pos    uint64          // byte offset of the offending character
	Char   rune            // the character no pattern matched
	Tokens []derivado.Token // tokens collected before the error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unrecognized character %q at position %d", e.Char, e.Pos)
}

// PatternScanner scans an input string left to right against the terminal
// patterns of a grammar. Create one with New.
type PatternScanner struct {
	patterns []*grammar.Pattern
	input    string
	pos      int
	tokens   []derivado.Token // tokens handed out so far
	err      *LexError
	Error    func(error) // error handler
}

var _ Tokenizer = (*PatternScanner)(nil)

// New creates a scanner for an input string, matching against the terminal
// patterns of g in declaration order.
func New(input string, g *grammar.Grammar) *PatternScanner {
	return &PatternScanner{
		patterns: g.Patterns(),
		input:    input,
		Error:    logError,
	}
}

// SetErrorHandler sets an error handler for the scanner.
func (s *PatternScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

// Err returns the lexical error the scanner ran into, if any.
func (s *PatternScanner) Err() *LexError {
	return s.err
}

// NextToken returns the next token of the input. At end of input, and after
// a lexical error, it returns a token named EOF.
func (s *PatternScanner) NextToken() derivado.Token {
	if s.err != nil {
		return derivado.MakeToken(EOF, "", uint64(s.pos))
	}
	for s.pos < len(s.input) {
		if token, ok := s.match(); ok {
			s.tokens = append(s.tokens, token)
			return token
		}
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if unicode.IsSpace(r) { // whitespace not covered by a pattern separates tokens
			s.pos += size
			continue
		}
		s.err = &LexError{Pos: uint64(s.pos), Char: r, Tokens: s.tokens}
		s.Error(s.err)
		break
	}
	tracer().Debugf("scanner reached end of input")
	return derivado.MakeToken(EOF, "", uint64(s.pos))
}

// match tries every pattern at the current position; first non-empty prefix
// match wins.
func (s *PatternScanner) match() (derivado.Token, bool) {
	for _, p := range s.patterns {
		if lexeme, ok := p.TryMatch(s.input, s.pos); ok {
			token := derivado.MakeToken(p.Name, lexeme, uint64(s.pos))
			tracer().Debugf("token %v @%d", token, s.pos)
			s.pos += len(lexeme)
			return token, true
		}
	}
	return derivado.Token{}, false
}

// Tokenize scans the complete input string against the terminal patterns of
// a grammar and returns the ordered token sequence. On a lexical error it
// returns a *LexError, which still carries the tokens collected so far.
//
// Repeated calls on the same (input, grammar) pair yield identical
// sequences.
func Tokenize(input string, g *grammar.Grammar) ([]derivado.Token, error) {
	s := New(input, g)
	s.SetErrorHandler(func(error) {}) // Tokenize reports through its return value
	var tokens []derivado.Token
	for {
		token := s.NextToken()
		if token.Name == EOF {
			break
		}
		tokens = append(tokens, token)
	}
	if s.err != nil {
		return nil, s.err
	}
	return tokens, nil
}
