// Package lexvi compiles ordered token rules into deterministic
// automata and drives them: tokenization, stepwise simulation and
// pipeline analysis all start here.
package lexvi

import (
	"fmt"

	"github.com/lexvi/lexvi/automaton"
	"github.com/lexvi/lexvi/internal/compiler"
	"github.com/lexvi/lexvi/rule"
)

// Token is the scanner token type, re-exported so most callers only
// import this package.
type Token = automaton.Token

// Options configures lexer compilation.
type Options struct {
	// Rules is the ordered token rule set; earlier rules win ties
	Rules []rule.Rule

	// Alphabet is the input symbol set. The zero value selects the
	// printable ASCII default
	Alphabet automaton.Charset

	// SkipMinimize keeps the raw subset-construction automaton
	SkipMinimize bool

	// Verbose enables pipeline stage logging
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	return rule.Validate(o.Rules)
}

func (o Options) alphabet() automaton.Charset {
	if o.Alphabet.Count() == 0 {
		return automaton.DefaultAlphabet()
	}
	return o.Alphabet
}

func (o Options) pipeline() *compiler.Compiler {
	return compiler.New(compiler.Config{
		Rules:        o.Rules,
		Alphabet:     o.alphabet(),
		SkipMinimize: o.SkipMinimize,
		Verbose:      o.Verbose,
	})
}

// Compile builds the deterministic automaton recognizing the given
// rules. It returns an error if any rule is malformed.
func Compile(opts Options) (*automaton.Automaton, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	a, err := opts.pipeline().Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}
	return a, nil
}
