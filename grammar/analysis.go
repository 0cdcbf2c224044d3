package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// analyze performs the static consistency checks on a freshly built
// grammar: every referenced terminal must have a defining pattern, every
// referenced non-terminal must have at least one rule, and the start symbol
// must be reachable (which it trivially is; unreachable non-terminals are
// reported as diagnostics only).
func (g *Grammar) analyze() *Error {
	defined := treeset.NewWithStringComparator()
	for _, r := range g.rules {
		defined.Add(r.LHS.Name)
	}
	for _, sym := range g.symlist {
		if sym.IsTerminal() {
			if g.patmap[sym.Name] == nil {
				return undefinedSymbol(sym.Name, "terminal has no defining pattern")
			}
			continue
		}
		if !defined.Contains(sym.Name) {
			return undefinedSymbol(sym.Name, "non-terminal has no production rule")
		}
	}
	g.checkReachability()
	return nil
}

// checkReachability walks the rules from the start symbol and logs
// non-terminals which can never take part in a derivation.
func (g *Grammar) checkReachability() {
	reached := treeset.NewWithStringComparator()
	reached.Add(g.start.Name)
	queue := []*Symbol{g.start}
	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		for _, r := range g.RulesFor(sym.Name) {
			for _, rhsym := range r.rhs {
				if rhsym.IsTerminal() || reached.Contains(rhsym.Name) {
					continue
				}
				reached.Add(rhsym.Name)
				queue = append(queue, rhsym)
			}
		}
	}
	g.EachNonTerminal(func(sym *Symbol) interface{} {
		if !reached.Contains(sym.Name) {
			tracer().Infof("non-terminal %q is unreachable from start symbol %q", sym.Name, g.start.Name)
		}
		return nil
	})
}

// DerivesEpsilon returns true if sym can derive the empty sequence, i.e. if
// the set of strings derivable from sym includes the empty string. Engines
// use this for the empty-input boundary case.
func (g *Grammar) DerivesEpsilon(sym *Symbol) bool {
	if sym.IsTerminal() {
		return false
	}
	nullable := g.nullableSet()
	return nullable.Contains(sym.Name)
}

// nullableSet computes the set of non-terminals deriving epsilon, by
// fixed-point iteration over the rules.
func (g *Grammar) nullableSet() *treeset.Set {
	nullable := treeset.NewWithStringComparator()
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if nullable.Contains(r.LHS.Name) {
				continue
			}
			allNullable := true
			for _, sym := range r.rhs {
				if sym.IsTerminal() || !nullable.Contains(sym.Name) {
					allNullable = false
					break
				}
			}
			if allNullable {
				nullable.Add(r.LHS.Name)
				changed = true
			}
		}
	}
	return nullable
}
