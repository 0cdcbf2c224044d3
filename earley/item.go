package earley

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/derivado/derivado/grammar"
	"github.com/derivado/derivado/tree"
)

// item is an Earley item: a rule with a dot position within its RHS, plus
// the state the item originated in. Items collect the derivation-tree
// children for the RHS symbols left of the dot; they are immutable once
// created (advance creates a new item).
type item struct {
	rule     *grammar.Rule
	dot      int
	origin   int
	children []*tree.Node
}

// itemKey is the identity of an item within a state. Children do not take
// part: the first item added for a key wins, which preserves the
// declaration-order tie-break for ambiguous derivations.
type itemKey struct {
	Serial int
	Dot    int
	Origin int
}

func (it *item) key() string {
	hash, err := structhash.Hash(itemKey{Serial: it.rule.Serial, Dot: it.dot, Origin: it.origin}, 1)
	if err != nil { // cannot happen for a flat struct
		panic(err)
	}
	return hash
}

// completed returns true if the dot has passed the complete RHS.
func (it *item) completed() bool {
	return it.dot >= len(it.rule.RHS())
}

// nextSymbol returns the symbol right of the dot, or nil for completed
// items.
func (it *item) nextSymbol() *grammar.Symbol {
	if it.completed() {
		return nil
	}
	return it.rule.RHS()[it.dot]
}

// advance moves the dot over the next RHS symbol, adopting the child node
// derived for it.
func (it *item) advance(child *tree.Node) *item {
	children := make([]*tree.Node, len(it.children), len(it.children)+1)
	copy(children, it.children)
	return &item{
		rule:     it.rule,
		dot:      it.dot + 1,
		origin:   it.origin,
		children: append(children, child),
	}
}

// node builds the derivation-tree node for a completed item. at is the byte
// offset of the item's origin position; an epsilon derivation carries its
// empty span there.
func (it *item) node(at uint64) *tree.Node {
	if len(it.children) > 0 {
		at = it.children[0].Extent.From()
	}
	return tree.NonTerm(it.rule.LHS.Name, it.children, at)
}

func (it *item) String() string {
	rhs := it.rule.RHS()
	parts := make([]string, 0, len(rhs)+1)
	for i, sym := range rhs {
		if i == it.dot {
			parts = append(parts, "•")
		}
		parts = append(parts, sym.Name)
	}
	if it.completed() {
		parts = append(parts, "•")
	}
	return fmt.Sprintf("%s → %s [%d]", it.rule.LHS.Name, strings.Join(parts, " "), it.origin)
}

// --- States -----------------------------------------------------------------

// state is one Earley chart state: an ordered list of items, deduplicated
// by item key. Items are appended while the state is being processed, so
// all iteration is index-based.
type state struct {
	items *arraylist.List
	seen  map[string]bool
}

func newState() *state {
	return &state{
		items: arraylist.New(),
		seen:  map[string]bool{},
	}
}

// add appends an item unless an item with the same key is already present.
func (s *state) add(it *item) {
	key := it.key()
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items.Add(it)
}

func (s *state) size() int {
	return s.items.Size()
}

func (s *state) at(i int) *item {
	v, _ := s.items.Get(i)
	return v.(*item)
}
