package grammar

import "fmt"

// ErrorKind classifies grammar errors.
type ErrorKind int

// Grammar errors come in three flavors: a right-hand side referencing a
// symbol with neither a rule nor a pattern, a malformed grammar file, and
// a grammar for which no start symbol can be determined.
const (
	UndefinedSymbol ErrorKind = iota + 1
	SyntaxError
	NoStartSymbol
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedSymbol:
		return "undefined symbol"
	case SyntaxError:
		return "syntax error"
	case NoStartSymbol:
		return "no start symbol"
	}
	return "unknown grammar error"
}

// Error is the error type returned for inconsistent or malformed grammars.
// Symbol is set for UndefinedSymbol, Line (1-based) for errors which can be
// attributed to a line of the grammar file.
type Error struct {
	Kind   ErrorKind
	Symbol string
	Line   int
	msg    string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Kind == UndefinedSymbol && e.Line > 0:
		return fmt.Sprintf("grammar: line %d: undefined symbol %q: %s", e.Line, e.Symbol, e.msg)
	case e.Kind == UndefinedSymbol:
		return fmt.Sprintf("grammar: undefined symbol %q: %s", e.Symbol, e.msg)
	case e.Line > 0:
		return fmt.Sprintf("grammar: line %d: %v: %s", e.Line, e.Kind, e.msg)
	}
	return fmt.Sprintf("grammar: %v: %s", e.Kind, e.msg)
}

func undefinedSymbol(name, msg string) *Error {
	return &Error{Kind: UndefinedSymbol, Symbol: name, msg: msg}
}

func syntaxError(line int, format string, args ...interface{}) *Error {
	return &Error{Kind: SyntaxError, Line: line, msg: fmt.Sprintf(format, args...)}
}

func noStartSymbol(msg string) *Error {
	return &Error{Kind: NoStartSymbol, msg: msg}
}
