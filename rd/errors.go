package rd

import "fmt"

// ErrorKind classifies parse errors.
type ErrorKind int

const (
	// Rejected: the token sequence is lexically fine, but no derivation of
	// the start symbol covers all of it.
	Rejected ErrorKind = iota + 1
	// NonProgress: the derivation re-entered a non-terminal without
	// consuming input, usually because of a left-recursive rule.
	NonProgress
)

// ParseError is the rejection signal of the derivation engine. Furthest is
// the furthest token position reached across all backtracked attempts; it
// is advisory only, acceptance is strictly binary.
type ParseError struct {
	Kind     ErrorKind
	Furthest uint64
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case NonProgress:
		return "derivation cannot make progress (left-recursive grammar?)"
	}
	return fmt.Sprintf("input rejected (furthest token position reached: %d)", e.Furthest)
}
