package lexvi

import (
	"fmt"

	"github.com/lexvi/lexvi/internal/codegen"
)

// GenerateOptions configures standalone scanner generation.
type GenerateOptions struct {
	// Options selects and compiles the rule set
	Options

	// Package is the Go package name for the generated code
	Package string

	// Name is the prefix for generated identifiers (e.g. "Calc"
	// generates CalcTokenize and CalcToken)
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string
}

// Generate compiles the rules and writes a standalone Go scanner: a
// plain source file embedding the automaton, with no dependency on
// this module.
func Generate(opts GenerateOptions) error {
	a, err := Compile(opts.Options)
	if err != nil {
		return err
	}
	err = codegen.Generate(codegen.Config{
		Package:    opts.Package,
		Name:       opts.Name,
		OutputFile: opts.OutputFile,
		Automaton:  a,
	})
	if err != nil {
		return fmt.Errorf("failed to generate scanner: %w", err)
	}
	return nil
}
