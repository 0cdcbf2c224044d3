package grammar

import (
	"bufio"
	"io"
	"io/ioutil"
	"strings"
)

// The textual grammar format is line-oriented:
//
//    # tokens
//    num: [0-9]+
//    op_suma: +|-
//    op_mul: *|/
//    # productions
//    expr -> term op_suma expr | term
//    term -> factor op_mul term | factor
//    factor -> num
//
// Lines declaring a terminal pattern have the form 'name: pattern'; lines
// containing an arrow ('->' or '→') declare production alternatives.
// A '%start name' directive explicitly designates the start symbol;
// otherwise the LHS of the first production is used. Lines starting with
// '#' and blank lines are skipped. An empty RHS (or the sole symbol 'ε')
// declares an epsilon-production.

// Load parses the textual grammar format and returns the frozen grammar
// model. All errors are of type *Error.
func Load(name string, input io.Reader) (*Grammar, error) {
	b := NewBuilder(name)
	var prods []protoProd
	var explicitStart string
	lineno := 0
	scan := bufio.NewScanner(input)
	for scan.Scan() {
		lineno++
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "%start") {
			arg := strings.TrimSpace(strings.TrimPrefix(line, "%start"))
			if arg == "" {
				return nil, syntaxError(lineno, "%%start directive without a symbol")
			}
			explicitStart = arg
			continue
		}
		// pattern declarations go first: a pattern text may contain an arrow
		if name, decl, ok := splitPatternDecl(line); ok {
			b.Pattern(name, decl)
			if b.err != nil {
				b.err.Line = lineno
				return nil, b.err
			}
			continue
		}
		if lhs, rhs, ok := splitProduction(line); ok {
			if !isIdentifier(lhs) {
				return nil, syntaxError(lineno, "invalid production LHS %q", lhs)
			}
			for _, alt := range strings.Split(rhs, "|") {
				prods = append(prods, protoProd{lhs: lhs, rhs: strings.Fields(alt), line: lineno})
			}
			continue
		}
		return nil, syntaxError(lineno, "expected a pattern or production declaration, got %q", line)
	}
	if err := scan.Err(); err != nil {
		return nil, syntaxError(lineno, "reading grammar: %v", err)
	}
	lhsNames := map[string]bool{}
	for _, p := range prods {
		lhsNames[p.lhs] = true
	}
	for _, p := range prods {
		if b.patmap[p.lhs] != nil {
			return nil, syntaxError(p.line, "symbol %q declared both as terminal pattern and production LHS", p.lhs)
		}
		rb := b.LHS(p.lhs)
		eps := true
		for _, sym := range p.rhs {
			if sym == "ε" {
				continue
			}
			eps = false
			if !lhsNames[sym] && b.patmap[sym] != nil {
				rb.T(sym)
			} else {
				rb.N(sym)
			}
		}
		if eps {
			rb.Epsilon()
		} else {
			rb.End()
		}
	}
	if explicitStart != "" {
		b.Start(explicitStart)
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded grammar %q: %d patterns, %d rules, start symbol %v",
		name, len(g.patterns), len(g.rules), g.start)
	return g, nil
}

// LoadString is a convenience wrapper around Load for in-memory grammars.
func LoadString(name, text string) (*Grammar, error) {
	return Load(name, strings.NewReader(text))
}

// LoadFile reads and parses a grammar file from disk.
func LoadFile(path string) (*Grammar, error) {
	text, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, syntaxError(0, "cannot read grammar file: %v", err)
	}
	return LoadString(path, string(text))
}

type protoProd struct {
	lhs  string
	rhs  []string
	line int
}

// splitProduction splits a production line at its arrow. Both '→' and '->'
// are accepted.
func splitProduction(line string) (lhs, rhs string, ok bool) {
	for _, arrow := range []string{"→", "->"} {
		if i := strings.Index(line, arrow); i >= 0 {
			return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+len(arrow):]), true
		}
	}
	return "", "", false
}

// splitPatternDecl splits a terminal pattern line 'name: pattern'. The name
// must be a plain identifier, so that pattern text containing colons is not
// misread.
func splitPatternDecl(line string) (name, decl string, ok bool) {
	i := strings.Index(line, ":")
	if i <= 0 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:i])
	if !isIdentifier(name) {
		return "", "", false
	}
	return name, strings.TrimSpace(line[i+1:]), true
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}
