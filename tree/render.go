package tree

import (
	"fmt"
	"io"
	"strings"
)

// Renderers for derivation trees. All of them are pure: they do not alter
// or re-validate the tree, and the same tree always renders identically.

// IndentedString renders a tree as an indented outline, one node per line.
//
//    expr
//    . term
//    . . num '2'
//
func IndentedString(root *Node) string {
	var b strings.Builder
	indented(root, 0, &b)
	return b.String()
}

func indented(n *Node, level int, b *strings.Builder) {
	if n == nil {
		return
	}
	for i := 0; i < level; i++ {
		b.WriteString(". ")
	}
	if n.IsLeaf() {
		fmt.Fprintf(b, "%s %q\n", n.Sym, n.Token.Lexeme)
		return
	}
	b.WriteString(n.Sym)
	b.WriteString("\n")
	for _, ch := range n.Children {
		indented(ch, level+1, b)
	}
}

// BracketString renders a tree in bracket notation:
//
//    (expr (term (num '2')))
//
// Epsilon-derivations render as (sym ε).
func BracketString(root *Node) string {
	var b strings.Builder
	bracketed(root, &b)
	return b.String()
}

func bracketed(n *Node, b *strings.Builder) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		fmt.Fprintf(b, "(%s '%s')", n.Sym, n.Token.Lexeme)
		return
	}
	b.WriteString("(")
	b.WriteString(n.Sym)
	if len(n.Children) == 0 {
		b.WriteString(" ε")
	}
	for _, ch := range n.Children {
		b.WriteString(" ")
		bracketed(ch, b)
	}
	b.WriteString(")")
}

// ToGraphViz exports a tree to the Graphviz Dot format. Terminal nodes are
// drawn in lightblue, non-terminals in lightcoral.
func ToGraphViz(root *Node, w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	serial := 0
	graphviz(root, &serial, w)
	io.WriteString(w, "}\n")
}

func graphviz(n *Node, serial *int, w io.Writer) int {
	id := *serial
	*serial++
	if n.IsLeaf() {
		fmt.Fprintf(w, "n%03d [fillcolor=lightblue label=\"%s\"]\n", id, dotEscape(n.Token.Lexeme))
		return id
	}
	fmt.Fprintf(w, "n%03d [fillcolor=lightcoral label=\"%s\"]\n", id, dotEscape(n.Sym))
	for _, ch := range n.Children {
		chID := graphviz(ch, serial, w)
		fmt.Fprintf(w, "n%03d -> n%03d\n", id, chID)
	}
	return id
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return strings.ReplaceAll(s, "\"", "\\\"")
}
