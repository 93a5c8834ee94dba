// Package compiler implements the rule-to-automaton pipeline: pattern
// parsing, Thompson NFA construction, subset construction and
// tag-preserving DFA minimization.
package compiler

import (
	"fmt"
	"io"

	"github.com/lexvi/lexvi/automaton"
	"github.com/lexvi/lexvi/rule"
)

// Config holds the configuration for one pipeline run.
type Config struct {
	Rules        []rule.Rule
	Alphabet     automaton.Charset
	SkipMinimize bool // Keep the raw subset-construction automaton
	Verbose      bool // Enable verbose logging of pipeline stages
}

// Compiler turns an ordered rule set into a deterministic automaton.
type Compiler struct {
	config Config
	logger *Logger
	stats  PipelineStats
}

// PipelineStats records per-stage sizes from the most recent run.
type PipelineStats struct {
	Rules           int
	AlphabetSize    int
	ASTNodes        int
	NFAStates       int
	DFAStates       int
	MinimizedStates int
}

// New creates a compiler instance for the given configuration.
func New(config Config) *Compiler {
	return &Compiler{
		config: config,
		logger: NewLogger(config.Verbose),
	}
}

// SetLogOutput redirects verbose logging, mainly for tests.
func (c *Compiler) SetLogOutput(w io.Writer) {
	c.logger.SetOutput(w)
}

// Stats returns the sizes recorded by the last Compile call.
func (c *Compiler) Stats() PipelineStats {
	return c.stats
}

// Compile runs the full pipeline. It either returns a valid automaton
// or an error; no partially built machine escapes.
func (c *Compiler) Compile() (*automaton.Automaton, error) {
	if err := rule.Validate(c.config.Rules); err != nil {
		return nil, err
	}
	if c.config.Alphabet.Count() == 0 {
		return nil, fmt.Errorf("alphabet cannot be empty")
	}

	c.stats = PipelineStats{
		Rules:        len(c.config.Rules),
		AlphabetSize: c.config.Alphabet.Count(),
	}

	c.logger.Section("Rule Analysis")
	c.logger.Log("Rules: %d", c.stats.Rules)
	c.logger.Log("Alphabet symbols: %d", c.stats.AlphabetSize)
	for _, r := range c.config.Rules {
		node, err := parsePattern(r.Pattern, c.config.Alphabet)
		if err != nil {
			break // buildNFA reports the error with rule context
		}
		nodes := countNodes(node)
		c.stats.ASTNodes += nodes
		c.logger.Log("Rule %q: %d AST nodes", r.Name, nodes)
	}

	n, err := buildNFA(c.config.Rules, c.config.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("failed to build NFA: %w", err)
	}
	c.stats.NFAStates = len(n.states)
	c.logger.Section("NFA Construction")
	c.logger.Log("NFA states: %d", c.stats.NFAStates)

	d := determinize(n, c.config.Alphabet)
	c.stats.DFAStates = len(d.states)
	c.logger.Section("Subset Construction")
	c.logger.Log("DFA states: %d", c.stats.DFAStates)

	final := d
	if c.config.SkipMinimize {
		c.stats.MinimizedStates = len(d.states)
		c.logger.Log("Minimization skipped")
	} else {
		final = minimize(d, c.config.Alphabet)
		c.stats.MinimizedStates = len(final.states)
		c.logger.Section("Minimization")
		c.logger.Log("Minimized states: %d (from %d)", c.stats.MinimizedStates, c.stats.DFAStates)
	}

	tags := make([]automaton.Tag, len(c.config.Rules))
	for i, r := range c.config.Rules {
		tags[i] = automaton.Tag{Name: r.Name, Skip: r.Skip}
	}

	a, err := toAutomaton(final, c.config.Alphabet, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble automaton: %w", err)
	}
	return a, nil
}

// toAutomaton converts the internal dense machine into the public
// immutable form, compressing each row into arcs.
func toAutomaton(d *dfa, alphabet automaton.Charset, tags []automaton.Tag) (*automaton.Automaton, error) {
	cfg := automaton.Config{
		Start:    d.start,
		Alphabet: alphabet,
		Tags:     tags,
		States:   make([]automaton.StateConfig, len(d.states)),
	}
	for id := range d.states {
		st := &d.states[id]
		sc := automaton.StateConfig{Tags: append([]int(nil), st.tags...)}
		c := 0
		for c < 256 {
			if st.next[c] == automaton.Reject {
				c++
				continue
			}
			lo, target := c, st.next[c]
			for c < 256 && st.next[c] == target {
				c++
			}
			sc.Arcs = append(sc.Arcs, automaton.Arc{Lo: byte(lo), Hi: byte(c - 1), Target: target})
		}
		cfg.States[id] = sc
	}
	return automaton.New(cfg)
}
