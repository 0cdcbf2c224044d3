package lexmach

import (
	"strings"

	"github.com/derivado/derivado"
	"github.com/derivado/derivado/grammar"
	"github.com/derivado/derivado/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'derivado.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("derivado.scanner")
}

// LMAdapter drives a lexmachine DFA compiled from the terminal patterns of
// a grammar. Contrary to the default pattern scanner, lexmachine performs
// maximal-munch scanning with priority given to earlier declarations only
// on equal match length. Grammars whose patterns rely on the
// first-declared-wins tie-break should use the default scanner instead.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	names []string // token type id → terminal name
}

// FromGrammar creates a new lexmachine adapter from the terminal patterns
// of a grammar. Literal pattern branches are escaped; regex branches are
// handed to lexmachine as they are.
//
// FromGrammar will return an error if compiling the DFA failed.
func FromGrammar(g *grammar.Grammar) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, p := range g.Patterns() {
		id := len(adapter.names)
		adapter.names = append(adapter.names, p.Name)
		for _, branch := range p.Branches() {
			pat := branch.Text
			if branch.Literal {
				pat = "\\" + strings.Join(strings.Split(branch.Text, ""), "\\")
			}
			adapter.Lexer.Add([]byte(pat), MakeToken(p.Name, id))
		}
	}
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), Skip) // declared patterns take priority
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement
// the Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{adapter: lm, scanner: s, Error: logError}, nil
}

// Tokenize scans a complete input string and returns the ordered token
// sequence, or a *scanner.LexError carrying the offending position and the
// tokens collected so far.
func (lm *LMAdapter) Tokenize(input string) ([]derivado.Token, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []derivado.Token
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			lexErr := &scanner.LexError{Tokens: tokens}
			if ui, is := err.(*machines.UnconsumedInput); is {
				lexErr.Pos = uint64(ui.StartTC)
				lexErr.Char = rune(input[ui.StartTC])
			}
			return nil, lexErr
		}
		token := tok.(*lexmachine.Token)
		tokens = append(tokens, derivado.MakeToken(
			lm.names[token.Type], string(token.Lexeme), uint64(token.TC)))
	}
	return tokens, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	adapter *LMAdapter
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() derivado.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return derivado.MakeToken(scanner.EOF, "", 0)
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return derivado.MakeToken(
		lms.adapter.names[token.Type], string(token.Lexeme), uint64(token.TC))
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
