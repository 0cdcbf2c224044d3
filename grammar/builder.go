package grammar

// Builder is a fluent builder object for grammars. Clients declare terminal
// patterns and production rules, then call Grammar(), which checks the
// result for consistency and freezes it.
//
//    b := grammar.NewBuilder("G")
//    b.Pattern("a", "a")
//    b.LHS("S").N("A").T("a").End() // S → A a
//    b.LHS("A").Epsilon()           // A →
//    g, err := b.Grammar()
//
type Builder struct {
	name     string
	rules    []*protoRule
	patterns []*Pattern
	patmap   map[string]*Pattern
	start    string // explicitly designated start symbol, if any
	err      *Error // first error encountered while building
}

type protoRule struct {
	lhs string
	rhs []protoSym
}

type protoSym struct {
	name     string
	terminal bool
}

// NewBuilder creates a new grammar builder for a grammar with a given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		patmap: map[string]*Pattern{},
	}
}

// Pattern declares a terminal category together with its pattern
// declaration text. Every terminal must have exactly one defining pattern;
// re-declaring one is an error.
func (b *Builder) Pattern(name, decl string) *Builder {
	if b.patmap[name] != nil {
		b.fail(syntaxError(0, "duplicate pattern for terminal %q", name))
		return b
	}
	p, err := CompilePattern(name, decl)
	if err != nil {
		b.fail(err.(*Error))
		return b
	}
	b.patterns = append(b.patterns, p)
	b.patmap[name] = p
	return b
}

// Start explicitly designates the start symbol. Without this, the LHS of
// the first rule becomes the start symbol.
func (b *Builder) Start(name string) *Builder {
	b.start = name
	return b
}

// LHS starts a new production alternative for a non-terminal.
func (b *Builder) LHS(name string) *RuleBuilder {
	r := &protoRule{lhs: name}
	return &RuleBuilder{b: b, rule: r}
}

// RuleBuilder is a builder type for a single production alternative. Calls
// to N and T append symbol references; End or Epsilon complete the rule.
type RuleBuilder struct {
	b    *Builder
	rule *protoRule
}

// N appends a non-terminal reference to the RHS under construction.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, protoSym{name: name})
	return rb
}

// T appends a terminal reference to the RHS under construction.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, protoSym{name: name, terminal: true})
	return rb
}

// End completes the production alternative.
func (rb *RuleBuilder) End() {
	rb.b.rules = append(rb.b.rules, rb.rule)
}

// Epsilon completes the production alternative as an epsilon-rule, i.e.
// with an empty RHS.
func (rb *RuleBuilder) Epsilon() {
	rb.rule.rhs = nil
	rb.b.rules = append(rb.b.rules, rb.rule)
}

func (b *Builder) fail(e *Error) {
	if b.err == nil {
		b.err = e
	}
}

// Grammar checks the collected declarations for consistency and returns the
// frozen grammar. It fails with an UndefinedSymbol error if a RHS references
// a symbol with neither a rule nor a pattern, and with a NoStartSymbol error
// if no start symbol can be determined.
func (b *Builder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	g := &Grammar{
		Name:     b.name,
		symbols:  map[string]*Symbol{},
		patterns: b.patterns,
		patmap:   b.patmap,
	}
	lhsNames := map[string]bool{}
	for _, pr := range b.rules {
		lhsNames[pr.lhs] = true
	}
	intern := func(name string, terminal bool) (*Symbol, *Error) {
		if sym, ok := g.symbols[name]; ok {
			if sym.terminal != terminal {
				return nil, syntaxError(0, "symbol %q used both as terminal and non-terminal", name)
			}
			return sym, nil
		}
		sym := &Symbol{Name: name, terminal: terminal}
		g.symbols[name] = sym
		g.symlist = append(g.symlist, sym)
		return sym, nil
	}
	for _, pr := range b.rules {
		lhs, err := intern(pr.lhs, false)
		if err != nil {
			return nil, err
		}
		rule := &Rule{Serial: len(g.rules), LHS: lhs}
		for _, ps := range pr.rhs {
			terminal := ps.terminal || (!lhsNames[ps.name] && b.patmap[ps.name] != nil)
			sym, err := intern(ps.name, terminal)
			if err != nil {
				return nil, err
			}
			rule.rhs = append(rule.rhs, sym)
		}
		g.rules = append(g.rules, rule)
	}
	if err := g.resolveStart(b.start); err != nil {
		return nil, err
	}
	if err := g.analyze(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grammar) resolveStart(explicit string) *Error {
	if explicit != "" {
		sym := g.symbols[explicit]
		if sym == nil || sym.IsTerminal() {
			return noStartSymbol("designated start symbol " + explicit + " has no production")
		}
		g.start = sym
		return nil
	}
	if len(g.rules) == 0 {
		return noStartSymbol("grammar contains no production rules")
	}
	g.start = g.rules[0].LHS
	return nil
}
