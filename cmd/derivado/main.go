package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/derivado/derivado"
	"github.com/derivado/derivado/earley"
	"github.com/derivado/derivado/grammar"
	"github.com/derivado/derivado/rd"
	"github.com/derivado/derivado/scanner"
	"github.com/derivado/derivado/scanner/lexmach"
	"github.com/derivado/derivado/tree"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

// The example grammar written to disk when the grammar file is missing:
// arithmetic expressions with operator precedence, in the textual grammar
// format. It is left-recursive and therefore handled by the Earley engine;
// pass -engine rd to see the non-progress guard at work.
const exampleGrammar = `# arithmetic expressions with precedence
num: [0-9]+
id: [a-zA-Z_][a-zA-Z0-9_]*
op_suma: +|-
op_mul: *|/
pari: (
pard: )
E -> E op_suma T
E -> T
T -> T op_mul F
T -> F
F -> id
F -> num
F -> pari E pard
`

var traceKeys = []string{"derivado.grammar", "derivado.scanner", "derivado.parse"}

// main starts an interactive CLI: it loads a grammar file (creating an
// example file when absent), then reads candidate strings and reports the
// token sequence, the verdict, and on acceptance the derivation tree.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	grammarPath := flag.String("grammar", "gra.txt", "Grammar file to load")
	engine := flag.String("engine", "earley", "Derivation engine [rd|earley]")
	backend := flag.String("scanner", "pattern", "Scanner backend [pattern|dfa]")
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	dotfile := flag.String("dot", "", "Export accepted derivation trees to a Graphviz file")
	flag.Parse()
	setTraceLevel(traceLevel(*tlevel))
	//
	ensureGrammarFile(*grammarPath)
	g, err := grammar.LoadFile(*grammarPath)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	session, err := newSession(g, *engine, *backend, *dotfile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	session.dumpGrammar()
	//
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		session.check(input)
		return
	}
	session.repl()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(name string) tracing.TraceLevel {
	switch strings.ToLower(name) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	}
	return tracing.LevelInfo
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// ensureGrammarFile writes the example grammar if no grammar file exists.
func ensureGrammarFile(path string) {
	if _, err := os.Stat(path); err == nil {
		return
	}
	pterm.Info.Println("Creating example grammar file " + path)
	if err := ioutil.WriteFile(path, []byte(exampleGrammar), 0644); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// session bundles a loaded grammar with the selected scanner backend and
// derivation engine.
type session struct {
	g        *grammar.Grammar
	parse    func([]derivado.Token, *grammar.Grammar) (*tree.Node, error)
	tokenize func(string) ([]derivado.Token, error)
	dotfile  string
}

func newSession(g *grammar.Grammar, engine, backend, dotfile string) (*session, error) {
	s := &session{g: g, dotfile: dotfile}
	switch engine {
	case "rd":
		s.parse = rd.Parse
	case "earley":
		s.parse = earley.Parse
	default:
		return nil, fmt.Errorf("unknown derivation engine: %q", engine)
	}
	switch backend {
	case "pattern":
		s.tokenize = func(input string) ([]derivado.Token, error) {
			return scanner.Tokenize(input, g)
		}
	case "dfa":
		adapter, err := lexmach.FromGrammar(g)
		if err != nil {
			return nil, err
		}
		s.tokenize = adapter.Tokenize
	default:
		return nil, fmt.Errorf("unknown scanner backend: %q", backend)
	}
	return s, nil
}

func (s *session) dumpGrammar() {
	pterm.Info.Println("Grammar loaded: " + s.g.Name)
	for _, p := range s.g.Patterns() {
		fmt.Println("   " + p.String())
	}
	for i := 0; i < s.g.Size(); i++ {
		fmt.Printf("   %v\n", s.g.Rule(i))
	}
	pterm.Info.Println("Start symbol: " + s.g.StartSymbol().Name)
}

// repl reads candidate strings until EOF (or 'quit') and checks each one.
func (s *session) repl() {
	repl, err := readline.New("derivado> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	pterm.Info.Println("Enter an expression (quit with <ctrl>D)")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == "quit" {
			break
		}
		s.check(line)
	}
	println("Good bye!")
}

// check runs an input string through the scanner and the derivation engine
// and reports the outcome.
func (s *session) check(input string) {
	tokens, err := s.tokenize(input)
	if err != nil {
		if lexErr, ok := err.(*scanner.LexError); ok {
			pterm.Error.Println(lexErr.Error())
			if len(lexErr.Tokens) > 0 {
				fmt.Println("   tokens so far: " + formatTokens(lexErr.Tokens))
			}
			return
		}
		pterm.Error.Println(err.Error())
		return
	}
	fmt.Println("   tokens: " + formatTokens(tokens))
	node, err := s.parse(tokens, s.g)
	if err != nil {
		pterm.Error.Println("REJECT  " + err.Error())
		return
	}
	pterm.Info.Println("ACCEPT")
	fmt.Print(tree.IndentedString(node))
	fmt.Printf("   %d nodes, covering input span %v\n", node.Size(), node.Extent)
	s.exportDot(node)
}

func formatTokens(tokens []derivado.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (s *session) exportDot(node *tree.Node) {
	if s.dotfile == "" {
		return
	}
	f, err := os.Create(s.dotfile)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	defer f.Close()
	tree.ToGraphViz(node, f)
	pterm.Info.Println("Derivation tree written to " + s.dotfile)
}
