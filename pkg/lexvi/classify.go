package lexvi

import (
	"github.com/lexvi/lexvi/automaton"
	"github.com/lexvi/lexvi/rule"
)

// Classifier reclassifies identifier tokens after scanning using a
// language pack's keyword and operator word lists. Keeping keywords
// out of the rule set keeps the automaton small; one identifier rule
// plus a map lookup replaces dozens of keyword rules.
type Classifier struct {
	identifier string
	keywords   map[string]bool
	operators  map[string]bool
}

// NewClassifier builds a classifier from a pack. identifierKind names
// the token kind whose lexemes are checked against the pack's lists.
func NewClassifier(p *rule.Pack, identifierKind string) *Classifier {
	c := &Classifier{
		identifier: identifierKind,
		keywords:   make(map[string]bool, len(p.Keywords)),
		operators:  make(map[string]bool, len(p.Operators)),
	}
	for _, k := range p.Keywords {
		c.keywords[k] = true
	}
	for _, o := range p.Operators {
		c.operators[o] = true
	}
	return c
}

// Apply returns the token, reclassified as "operator" or "keyword"
// when its lexeme is declared as one. A nil classifier passes tokens
// through unchanged.
func (c *Classifier) Apply(t Token) Token {
	if c == nil || t.Kind != c.identifier {
		return t
	}
	if c.operators[t.Lexeme] {
		t.Kind = "operator"
		return t
	}
	if c.keywords[t.Lexeme] {
		t.Kind = "keyword"
	}
	return t
}

// Scan tokenizes input, drops tokens whose rule is marked Skip and
// applies the classifier when one is given.
func Scan(a *automaton.Automaton, input string, c *Classifier) ([]Token, error) {
	s := automaton.NewScanner(a, input)
	var tokens []Token
	for s.Scan() {
		t := s.Token()
		if a.Tag(t.Tag).Skip {
			continue
		}
		tokens = append(tokens, c.Apply(t))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
