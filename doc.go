/*
Package derivado is a grammar-driven derivation toolbox.

derivado reads a grammar specification from a file and decides whether
candidate input strings are derivable from it, producing a derivation tree
for accepted strings. Package structure is as follows:

■ grammar: Package grammar holds the in-memory representation of production
rules and terminal patterns, a fluent builder, and a loader for the textual
grammar file format.

■ scanner: Package scanner converts input strings into token sequences,
driven by the terminal patterns of a grammar. Sub-package lexmach provides a
DFA-based alternative built on lexmachine.

■ rd: Package rd implements a backtracking recursive-descent derivation
engine with a non-progress guard.

■ earley: Package earley implements an Earley chart parser, which also
handles left-recursive grammars.

■ tree: Package tree holds derivation trees and renderers for them.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package derivado
