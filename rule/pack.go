package rule

import (
	"encoding/json"
	"fmt"
	"os"
)

// Pack is a language pack: an ordered set of token patterns for one
// language, plus optional word lists used to reclassify scanned
// tokens (reserved words and word-shaped operators).
type Pack struct {
	Language  string       `json:"language"`
	Patterns  []PatternDef `json:"patterns"`
	Keywords  []string     `json:"keywords,omitempty"`
	Operators []string     `json:"operators,omitempty"`
}

// PatternDef is one pattern entry in a pack. Order matters: earlier
// entries win ties against later ones.
type PatternDef struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Skip    bool   `json:"skip,omitempty"`
}

// ParsePack decodes and validates a JSON language pack.
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode pack: %w", err)
	}
	if p.Language == "" {
		return nil, fmt.Errorf("pack has no language name")
	}
	if len(p.Patterns) == 0 {
		return nil, fmt.Errorf("pack %q has no patterns", p.Language)
	}
	if err := Validate(p.Rules()); err != nil {
		return nil, fmt.Errorf("pack %q: %w", p.Language, err)
	}
	return &p, nil
}

// LoadPack reads and parses a JSON language pack from disk.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack: %w", err)
	}
	p, err := ParsePack(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Rules converts the pack's patterns into an ordered rule sequence.
func (p *Pack) Rules() []Rule {
	rules := make([]Rule, len(p.Patterns))
	for i, def := range p.Patterns {
		rules[i] = Rule{Name: def.Name, Pattern: def.Pattern, Skip: def.Skip}
	}
	return rules
}

// clone returns a deep copy so built-in packs stay immutable.
func (p *Pack) clone() *Pack {
	out := &Pack{Language: p.Language}
	out.Patterns = append([]PatternDef(nil), p.Patterns...)
	out.Keywords = append([]string(nil), p.Keywords...)
	out.Operators = append([]string(nil), p.Operators...)
	return out
}
