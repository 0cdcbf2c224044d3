/*
Package lexmach implements an adapter for scanning with lexmachine
(https://github.com/timtadh/lexmachine).

The adapter compiles the terminal patterns of a grammar into a single DFA.
Scanning is maximal-munch: on equal match length the earlier declaration
wins, but a longer later match beats a shorter earlier one. This differs
from the default scanner of package scanner, which strictly applies the
first-declared-wins rule.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexmach
