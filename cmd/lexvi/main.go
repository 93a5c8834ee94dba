// Command lexvi compiles token rule sets into deterministic automata
// and drives them from the command line: tokenize input, trace the
// simulator step by step, inspect the machine or generate a
// standalone Go scanner.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/olekukonko/tablewriter"

	"github.com/lexvi/lexvi/automaton"
	"github.com/lexvi/lexvi/pkg/lexvi"
	"github.com/lexvi/lexvi/rule"
)

// identifierKind is the token kind reclassified against a pack's
// keyword and operator lists.
const identifierKind = "identifier"

// ruleFlags selects where the token rules come from and how they are
// compiled. Every command embeds it.
type ruleFlags struct {
	Lang       string `help:"Built-in language pack (python, cpp, java)" short:"l"`
	Rules      string `help:"JSON rule pack file" short:"r"`
	NoMinimize bool   `help:"Keep the raw subset-construction automaton"`
	Verbose    bool   `help:"Log pipeline stages to stderr" short:"v"`
}

func (f *ruleFlags) pack() (*rule.Pack, error) {
	switch {
	case f.Lang != "" && f.Rules != "":
		return nil, fmt.Errorf("--lang and --rules are mutually exclusive")
	case f.Rules != "":
		return rule.LoadPack(f.Rules)
	case f.Lang != "":
		return rule.Builtin(f.Lang)
	default:
		return nil, fmt.Errorf("one of --lang or --rules is required")
	}
}

func (f *ruleFlags) options(p *rule.Pack) lexvi.Options {
	return lexvi.Options{
		Rules:        p.Rules(),
		SkipMinimize: f.NoMinimize,
		Verbose:      f.Verbose,
	}
}

func (f *ruleFlags) compile() (*automaton.Automaton, *rule.Pack, error) {
	p, err := f.pack()
	if err != nil {
		return nil, nil, err
	}
	a, err := lexvi.Compile(f.options(p))
	if err != nil {
		return nil, nil, err
	}
	return a, p, nil
}

// readInput returns the file's contents, or stdin when no file is
// given.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

type tokensCmd struct {
	ruleFlags
	Raw  bool   `help:"Keep skip-rule tokens and disable keyword classification"`
	File string `arg:"" optional:"" help:"Input file (defaults to stdin)"`
}

func (c *tokensCmd) Run() error {
	a, p, err := c.compile()
	if err != nil {
		return err
	}
	input, err := readInput(c.File)
	if err != nil {
		return err
	}

	var tokens []lexvi.Token
	if c.Raw {
		tokens, err = automaton.All(a, input)
	} else {
		tokens, err = lexvi.Scan(a, input, lexvi.NewClassifier(p, identifierKind))
	}
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"#", "Kind", "Lexeme", "Start", "End", "Line", "Col"})
	for i, tok := range tokens {
		table.Append([]string{
			strconv.Itoa(i),
			tok.Kind,
			strconv.Quote(tok.Lexeme),
			strconv.Itoa(tok.Start),
			strconv.Itoa(tok.End),
			strconv.Itoa(tok.Line),
			strconv.Itoa(tok.Column),
		})
	}
	return table.Render()
}

type traceCmd struct {
	ruleFlags
	Input string `arg:"" help:"Input to simulate"`
}

func (c *traceCmd) Run() error {
	a, _, err := c.compile()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Pos", "State", "Symbol", "Accepts"})
	for step := range a.Steps(c.Input) {
		table.Append([]string{
			strconv.Itoa(step.Pos),
			stateLabel(step.State),
			symbolLabel(step.Symbol),
			tagLabel(a, step.Tag),
		})
	}
	return table.Render()
}

func stateLabel(state int) string {
	if state == automaton.Reject {
		return "reject"
	}
	return strconv.Itoa(state)
}

func symbolLabel(symbol int) string {
	if symbol < 0 {
		return "-"
	}
	return automaton.FormatSymbol(byte(symbol))
}

func tagLabel(a *automaton.Automaton, tag int) string {
	if tag < 0 {
		return "-"
	}
	return a.Tag(tag).Name
}

type tableCmd struct {
	ruleFlags
}

func (c *tableCmd) Run() error {
	a, _, err := c.compile()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"State", "Accepts", "Transitions"})
	for id := 0; id < a.NumStates(); id++ {
		name := strconv.Itoa(id)
		if id == a.Start() {
			name += " (start)"
		}

		var accepts []string
		for _, tag := range a.AcceptedTags(id) {
			accepts = append(accepts, a.Tag(tag).Name)
		}

		var arcs []string
		for _, arc := range a.Arcs(id) {
			arcs = append(arcs, fmt.Sprintf("%s -> %d", arc.Label(), arc.Target))
		}

		table.Append([]string{
			name,
			strings.Join(accepts, ", "),
			strings.Join(arcs, "; "),
		})
	}
	return table.Render()
}

type dotCmd struct {
	ruleFlags
}

func (c *dotCmd) Run() error {
	a, _, err := c.compile()
	if err != nil {
		return err
	}
	fmt.Print(a.DOT())
	return nil
}

type statsCmd struct {
	ruleFlags
}

func (c *statsCmd) Run() error {
	p, err := c.pack()
	if err != nil {
		return err
	}
	report, err := lexvi.Analyze(c.options(p))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Stage", "Size"})
	table.Append([]string{"Rules", strconv.Itoa(report.Rules)})
	table.Append([]string{"Alphabet symbols", strconv.Itoa(report.AlphabetSize)})
	table.Append([]string{"AST nodes", strconv.Itoa(report.ASTNodes)})
	table.Append([]string{"NFA states", strconv.Itoa(report.NFAStates)})
	table.Append([]string{"DFA states", strconv.Itoa(report.DFAStates)})
	table.Append([]string{"Minimized states", strconv.Itoa(report.MinimizedStates)})
	table.Append([]string{"Reduction", fmt.Sprintf("%.1f%%", report.Reduction()*100)})
	return table.Render()
}

type genCmd struct {
	ruleFlags
	Package string `help:"Package name for the generated file" default:"scanner"`
	Name    string `help:"Prefix for generated identifiers" default:"Lexer"`
	Output  string `help:"Output file path" short:"o" default:"scanner.go"`
}

func (c *genCmd) Run() error {
	p, err := c.pack()
	if err != nil {
		return err
	}
	err = lexvi.Generate(lexvi.GenerateOptions{
		Options:    c.options(p),
		Package:    c.Package,
		Name:       c.Name,
		OutputFile: c.Output,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Generated %s\n", c.Output)
	return nil
}

var cli struct {
	Tokens tokensCmd `cmd:"" help:"Tokenize input and print the token table"`
	Trace  traceCmd  `cmd:"" help:"Step the simulator over an input string"`
	Table  tableCmd  `cmd:"" help:"Print the transition table"`
	Dot    dotCmd    `cmd:"" help:"Print the automaton in Graphviz DOT form"`
	Stats  statsCmd  `cmd:"" help:"Report per-stage machine sizes"`
	Gen    genCmd    `cmd:"" help:"Generate a standalone Go scanner"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("lexvi"),
		kong.Description("Compile token rules into deterministic automata and put them to work."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
