package grammar

import (
	"regexp"
	"strings"
)

// A Pattern is the matching rule declared for a terminal category. Its
// declaration text consists of '|'-separated branches; each branch is either
// a regular expression or, if it does not compile as one, a fixed literal
// ('+' for example is not a valid regular expression on its own and thus
// matches the plus character).
//
// TryMatch attempts the branches in declaration order and returns the first
// non-empty prefix match. Matching is greedy per branch, but no overall
// longest-match is attempted.
type Pattern struct {
	Name     string // terminal category this pattern defines
	Decl     string // original declaration text
	branches []matcher
}

// matcher is a single-capability interface: try to match input at a given
// position, returning the matched lexeme.
type matcher interface {
	tryMatch(input string, pos int) (lexeme string, ok bool)
}

// CompilePattern compiles a pattern declaration for a terminal name.
func CompilePattern(name, decl string) (*Pattern, error) {
	decl = strings.TrimSpace(decl)
	if decl == "" {
		return nil, syntaxError(0, "empty pattern for terminal %q", name)
	}
	p := &Pattern{Name: name, Decl: decl}
	for _, branch := range splitBranches(decl) {
		if branch == "" {
			return nil, syntaxError(0, "empty alternative in pattern for terminal %q", name)
		}
		if re, err := regexp.Compile("^(?:" + branch + ")"); err == nil {
			p.branches = append(p.branches, regexMatcher{re: re})
		} else {
			p.branches = append(p.branches, literalMatcher(unescape(branch)))
		}
	}
	return p, nil
}

// TryMatch matches the pattern against input at position pos. It returns the
// matched lexeme of the first branch matching a non-empty prefix.
func (p *Pattern) TryMatch(input string, pos int) (string, bool) {
	for _, m := range p.branches {
		if lexeme, ok := m.tryMatch(input, pos); ok {
			return lexeme, true
		}
	}
	return "", false
}

func (p *Pattern) String() string {
	return p.Name + ": " + p.Decl
}

// A Branch is one alternative of a pattern declaration. Literal is true for
// branches which did not compile as a regular expression and are matched as
// fixed text; Text then carries the unescaped literal.
type Branch struct {
	Text    string
	Literal bool
}

// Branches returns the compiled branches of a pattern, in declaration
// order. Alternative scanner backends use this to re-compile patterns for
// their own matching engine.
func (p *Pattern) Branches() []Branch {
	branches := make([]Branch, len(p.branches))
	for i, m := range p.branches {
		switch b := m.(type) {
		case literalMatcher:
			branches[i] = Branch{Text: string(b), Literal: true}
		case regexMatcher:
			branches[i] = Branch{Text: strings.TrimSuffix(strings.TrimPrefix(b.re.String(), "^(?:"), ")")}
		}
	}
	return branches
}

// splitBranches splits a pattern declaration at top-level '|' characters.
// '|' inside character classes or escaped with a backslash does not split.
func splitBranches(decl string) []string {
	var branches []string
	var b strings.Builder
	inClass := false
	escaped := false
	for _, r := range decl {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			b.WriteRune(r)
			escaped = true
		case r == '[' && !inClass:
			b.WriteRune(r)
			inClass = true
		case r == ']' && inClass:
			b.WriteRune(r)
			inClass = false
		case r == '|' && !inClass:
			branches = append(branches, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	branches = append(branches, b.String())
	return branches
}

// unescape removes backslash-escapes from a literal branch, so that a
// declaration like '\|' matches a bar character.
func unescape(branch string) string {
	if !strings.ContainsRune(branch, '\\') {
		return branch
	}
	var b strings.Builder
	escaped := false
	for _, r := range branch {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
		escaped = false
	}
	return b.String()
}

// --- Matchers ---------------------------------------------------------------

type literalMatcher string

func (lit literalMatcher) tryMatch(input string, pos int) (string, bool) {
	if strings.HasPrefix(input[pos:], string(lit)) {
		return string(lit), true
	}
	return "", false
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (rm regexMatcher) tryMatch(input string, pos int) (string, bool) {
	lexeme := rm.re.FindString(input[pos:])
	if lexeme == "" { // empty matches do not produce tokens
		return "", false
	}
	return lexeme, true
}
