package lexvi

import (
	"fmt"

	"github.com/lexvi/lexvi/automaton"
)

// Report summarizes one compilation run: per-stage machine sizes plus
// the compiled automaton itself.
type Report struct {
	Rules           int
	AlphabetSize    int
	ASTNodes        int
	NFAStates       int
	DFAStates       int
	MinimizedStates int

	// Automaton is the compiled machine the numbers describe.
	Automaton *automaton.Automaton
}

// Reduction returns the fraction of subset-construction states that
// minimization removed, between 0 and 1.
func (r *Report) Reduction() float64 {
	if r.DFAStates == 0 {
		return 0
	}
	return 1 - float64(r.MinimizedStates)/float64(r.DFAStates)
}

// Analyze compiles the rules and reports how large the machine was at
// every pipeline stage. The report carries the compiled automaton, so
// analysis costs no extra compilation.
//
// Example:
//
//	report, err := lexvi.Analyze(lexvi.Options{Rules: rules})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d -> %d states\n", report.DFAStates, report.MinimizedStates)
func Analyze(opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	p := opts.pipeline()
	a, err := p.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}
	stats := p.Stats()
	return &Report{
		Rules:           stats.Rules,
		AlphabetSize:    stats.AlphabetSize,
		ASTNodes:        stats.ASTNodes,
		NFAStates:       stats.NFAStates,
		DFAStates:       stats.DFAStates,
		MinimizedStates: stats.MinimizedStates,
		Automaton:       a,
	}, nil
}
