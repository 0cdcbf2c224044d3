/*
Package tree holds derivation trees and renderers for them.

A derivation tree witnesses that an input string belongs to the language of
a grammar's start symbol: inner nodes are rule applications, leaves wrap the
input tokens. Trees are built by the derivation engines (packages rd and
earley) and are never shared or mutated after construction.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tree

import (
	"github.com/derivado/derivado"
)

// Node is a node of a derivation tree. It is labeled either with a
// non-terminal and an ordered list of children (one per matched symbol of
// the chosen alternative), or it is a leaf wrapping a single input token.
type Node struct {
	Sym      string        // symbol name; terminal category for leaves
	Token    derivado.Token // the input token, for leaves only
	Children []*Node       // nil for leaves and for epsilon-derivations
	Extent   derivado.Span  // input positions this node covers
	leaf     bool
}

// Leaf creates a tree leaf wrapping an input token.
func Leaf(token derivado.Token) *Node {
	return &Node{
		Sym:    token.Name,
		Token:  token,
		Extent: token.Span,
		leaf:   true,
	}
}

// NonTerm creates an inner node for a non-terminal, adopting the given
// children. Its extent is the union of the children's extents; an
// epsilon-derivation carries the empty span at the derivation position.
func NonTerm(sym string, children []*Node, at uint64) *Node {
	node := &Node{
		Sym:      sym,
		Children: children,
		Extent:   derivado.Span{at, at},
	}
	for i, ch := range children {
		if i == 0 {
			node.Extent = ch.Extent
		} else {
			node.Extent = node.Extent.Extend(ch.Extent)
		}
	}
	return node
}

// IsLeaf returns true for leaves, i.e. token nodes.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Size returns the number of nodes of the tree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	size := 1
	for _, ch := range n.Children {
		size += ch.Size()
	}
	return size
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return n.Token.String()
	}
	return n.Sym + n.Extent.String()
}
