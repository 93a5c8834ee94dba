// Package rule defines the token rules that drive lexer construction,
// the JSON language-pack format they can be loaded from, and the error
// types reported for malformed rules.
package rule

import "fmt"

// Rule defines one token kind as a named pattern. Rules are ordered:
// when two rules match the same lexeme, the one declared earlier wins.
type Rule struct {
	// Name identifies the token kind, e.g. "identifier" or "number"
	Name string

	// Pattern is the regular expression a lexeme must match
	Pattern string

	// Skip marks tokens of this kind as ignorable, e.g. whitespace.
	// The scanner still recognizes them; filtering happens downstream.
	Skip bool
}

// Validate checks that a rule sequence is well formed: non-empty, with
// non-empty names and patterns, and no duplicate names.
func Validate(rules []Rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("rule set cannot be empty")
	}
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if r.Name == "" {
			return fmt.Errorf("rule name cannot be empty")
		}
		if r.Pattern == "" {
			return fmt.Errorf("rule %q: pattern cannot be empty", r.Name)
		}
		if seen[r.Name] {
			return &DuplicateNameError{Name: r.Name}
		}
		seen[r.Name] = true
	}
	return nil
}
