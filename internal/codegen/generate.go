package codegen

import (
	"fmt"
	"go/format"
	"os"

	"github.com/dave/jennifer/jen"

	"github.com/lexvi/lexvi/automaton"
)

// Config describes one generated scanner.
type Config struct {
	// Package is the package name of the generated file
	Package string

	// Name is the prefix for generated identifiers (e.g. "Lexer"
	// generates LexerTokenize and LexerToken)
	Name string

	// OutputFile is the path the generated code is written to
	OutputFile string

	// Automaton is the compiled machine to embed
	Automaton *automaton.Automaton
}

// Validate checks if the config is complete.
func (c Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.Automaton == nil {
		return fmt.Errorf("automaton cannot be nil")
	}
	return nil
}

type generator struct {
	a    *automaton.Automaton
	name string
	file *jen.File
}

func (g *generator) exported(suffix string) string {
	return g.name + suffix
}

func (g *generator) unexported(suffix string) string {
	return LowerFirst(g.name) + suffix
}

// Generate writes a standalone scanner for the automaton. The output
// depends only on the standard library: transitions are unrolled into
// a switch and the token tables are plain arrays.
func Generate(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	g := &generator{
		a:    cfg.Automaton,
		name: UpperFirst(cfg.Name),
		file: jen.NewFile(cfg.Package),
	}
	g.file.Comment("Code generated by lexvi. DO NOT EDIT.")
	g.file.Line()

	g.genTables()
	g.genTokenType()
	g.genStep()
	g.genTokenize()

	if err := g.file.Save(cfg.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := formatFile(cfg.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	return nil
}

// genTables emits the kind name, skip flag and per-state winning tag
// arrays.
func (g *generator) genTables() {
	var kinds, skips []jen.Code
	for i := 0; i < g.a.NumTags(); i++ {
		tag := g.a.Tag(i)
		kinds = append(kinds, jen.Lit(tag.Name))
		skips = append(skips, jen.Lit(tag.Skip))
	}
	g.file.Var().Id(g.unexported("Kinds")).Op("=").Index(jen.Op("...")).String().Values(kinds...)
	g.file.Var().Id(g.unexported("Skip")).Op("=").Index(jen.Op("...")).Bool().Values(skips...)

	var accepts []jen.Code
	for id := 0; id < g.a.NumStates(); id++ {
		winner := -1
		if tags := g.a.AcceptedTags(id); len(tags) > 0 {
			winner = tags[0]
		}
		accepts = append(accepts, jen.Lit(winner))
	}
	g.file.Var().Id(g.unexported("Accept")).Op("=").Index(jen.Op("...")).Int().Values(accepts...)
	g.file.Line()
}

func (g *generator) genTokenType() {
	g.file.Commentf("%s is one scanned token.", g.exported("Token"))
	g.file.Type().Id(g.exported("Token")).Struct(
		jen.Id("Kind").String(),
		jen.Id("Lexeme").String(),
		jen.Id("Start").Int(),
		jen.Id("End").Int(),
	)
	g.file.Line()
}

// genStep unrolls the transition table into one switch over states
// with range checks per arc.
func (g *generator) genStep() {
	var cases []jen.Code
	for id := 0; id < g.a.NumStates(); id++ {
		var body []jen.Code
		for _, arc := range g.a.Arcs(id) {
			ret := jen.Return(jen.Lit(arc.Target))
			if arc.Lo == arc.Hi {
				body = append(body, jen.If(jen.Id("c").Op("==").Lit(int(arc.Lo))).Block(ret))
			} else {
				body = append(body, jen.If(
					jen.Id("c").Op(">=").Lit(int(arc.Lo)).
						Op("&&").Id("c").Op("<=").Lit(int(arc.Hi)),
				).Block(ret))
			}
		}
		if len(body) > 0 {
			cases = append(cases, jen.Case(jen.Lit(id)).Block(body...))
		}
	}

	g.file.Commentf("%s advances the automaton by one byte.", g.unexported("Step"))
	g.file.Func().Id(g.unexported("Step")).
		Params(jen.Id(StateName).Int(), jen.Id("c").Byte()).
		Int().
		Block(
			jen.Switch(jen.Id(StateName)).Block(cases...),
			jen.Return(jen.Lit(-1)),
		)
	g.file.Line()
}

// genTokenize emits the maximal-munch scan loop: run the automaton
// until it rejects, commit the last accepted position, repeat.
func (g *generator) genTokenize() {
	g.file.Commentf("%s scans input into tokens, always taking the longest", g.exported("Tokenize"))
	g.file.Comment("match. Tokens of skipped kinds are dropped.")
	g.file.Func().Id(g.exported("Tokenize")).
		Params(jen.Id(InputName).String()).
		Params(jen.Index().Id(g.exported("Token")), jen.Error()).
		Block(
			jen.Var().Id(TokensName).Index().Id(g.exported("Token")),
			jen.Id(OffsetName).Op(":=").Lit(0),
			jen.For(jen.Id(OffsetName).Op("<").Len(jen.Id(InputName))).Block(
				jen.Id(StateName).Op(":=").Lit(g.a.Start()),
				jen.Id(LastEndName).Op(":=").Lit(-1),
				jen.Id(LastTagName).Op(":=").Lit(-1),
				jen.For(
					jen.Id("i").Op(":=").Id(OffsetName),
					jen.Id("i").Op("<").Len(jen.Id(InputName)),
					jen.Id("i").Op("++"),
				).Block(
					jen.Id(StateName).Op("=").Id(g.unexported("Step")).Call(
						jen.Id(StateName), jen.Id(InputName).Index(jen.Id("i")),
					),
					jen.If(jen.Id(StateName).Op("<").Lit(0)).Block(
						jen.Break(),
					),
					jen.If(
						jen.Id("t").Op(":=").Id(g.unexported("Accept")).Index(jen.Id(StateName)),
						jen.Id("t").Op(">=").Lit(0),
					).Block(
						jen.Id(LastEndName).Op("=").Id("i").Op("+").Lit(1),
						jen.Id(LastTagName).Op("=").Id("t"),
					),
				),
				jen.If(jen.Id(LastEndName).Op("<").Lit(0)).Block(
					jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
						jen.Lit("no rule matches input at offset %d"), jen.Id(OffsetName),
					)),
				),
				jen.If(jen.Op("!").Id(g.unexported("Skip")).Index(jen.Id(LastTagName))).Block(
					jen.Id(TokensName).Op("=").Append(jen.Id(TokensName), jen.Id(g.exported("Token")).Values(jen.Dict{
						jen.Id("Kind"):   jen.Id(g.unexported("Kinds")).Index(jen.Id(LastTagName)),
						jen.Id("Lexeme"): jen.Id(InputName).Index(jen.Id(OffsetName).Op(":").Id(LastEndName)),
						jen.Id("Start"):  jen.Id(OffsetName),
						jen.Id("End"):    jen.Id(LastEndName),
					})),
				),
				jen.Id(OffsetName).Op("=").Id(LastEndName),
			),
			jen.Return(jen.Id(TokensName), jen.Nil()),
		)
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
