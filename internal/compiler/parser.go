package compiler

import (
	"github.com/lexvi/lexvi/automaton"
	"github.com/lexvi/lexvi/rule"
)

// parser is a recursive-descent parser over a pattern's bytes.
// Patterns are byte-oriented: the alphabet is a set of bytes and
// multi-byte runes get no special treatment.
type parser struct {
	pattern  string
	pos      int
	alphabet automaton.Charset
}

// parsePattern parses one rule pattern against the given alphabet.
// Grammar, lowest to highest precedence: alternation '|', implicit
// concatenation, postfix '*' '+' '?', then groups, classes, escapes,
// the '.' wildcard and plain literals.
func parsePattern(pattern string, alphabet automaton.Charset) (*regexNode, error) {
	p := &parser{pattern: pattern, alphabet: alphabet}
	node, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) {
		// Only a stray ')' can stop the descent before the end.
		return nil, p.parseError(p.pos, rule.UnbalancedGroup)
	}
	return node, nil
}

func (p *parser) parseError(offset int, reason rule.Reason) error {
	return &rule.PatternError{Offset: offset, Reason: reason}
}

// alternation parses branch ('|' branch)*.
func (p *parser) alternation() (*regexNode, error) {
	node, err := p.concat()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.pattern) && p.pattern[p.pos] == '|' {
		p.pos++
		right, err := p.concat()
		if err != nil {
			return nil, err
		}
		node = &regexNode{op: opAlternate, left: node, right: right}
	}
	return node, nil
}

// concat parses one or more terms, stopping at '|', ')' or the end of
// the pattern. An empty branch is an error, which also rejects empty
// patterns and empty groups.
func (p *parser) concat() (*regexNode, error) {
	var node *regexNode
	for p.pos < len(p.pattern) {
		c := p.pattern[p.pos]
		if c == '|' || c == ')' {
			break
		}
		term, err := p.postfix()
		if err != nil {
			return nil, err
		}
		if node == nil {
			node = term
		} else {
			node = &regexNode{op: opConcat, left: node, right: term}
		}
	}
	if node == nil {
		return nil, p.parseError(p.pos, rule.EmptyAlternative)
	}
	return node, nil
}

// postfix parses an atom followed by any number of repetition
// operators.
func (p *parser) postfix() (*regexNode, error) {
	node, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.pattern) {
		var op nodeOp
		switch p.pattern[p.pos] {
		case '*':
			op = opStar
		case '+':
			op = opPlus
		case '?':
			op = opOptional
		default:
			return node, nil
		}
		p.pos++
		node = &regexNode{op: op, left: node}
	}
	return node, nil
}

// atom parses a group, character class, escape, wildcard or literal.
func (p *parser) atom() (*regexNode, error) {
	start := p.pos
	switch c := p.pattern[p.pos]; c {
	case '(':
		p.pos++
		if p.pos >= len(p.pattern) {
			return nil, p.parseError(start, rule.UnbalancedGroup)
		}
		node, err := p.alternation()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.pattern) || p.pattern[p.pos] != ')' {
			return nil, p.parseError(start, rule.UnbalancedGroup)
		}
		p.pos++
		return &regexNode{op: opGroup, left: node}, nil

	case '[':
		return p.class()

	case '\\':
		set, err := p.escape()
		if err != nil {
			return nil, err
		}
		return &regexNode{op: opLiteral, set: set}, nil

	case '.':
		// The wildcard matches any alphabet symbol except newline.
		p.pos++
		set := p.alphabet
		set.Remove('\n')
		return &regexNode{op: opLiteral, set: set}, nil

	case '*', '+', '?':
		return nil, p.parseError(start, rule.DanglingOperator)

	default:
		p.pos++
		if !p.alphabet.Has(c) {
			return nil, p.parseError(start, rule.UnknownSymbol)
		}
		var set automaton.Charset
		set.Add(c)
		return &regexNode{op: opLiteral, set: set}, nil
	}
}

// escape parses a backslash sequence outside a class.
func (p *parser) escape() (automaton.Charset, error) {
	at := p.pos
	set, b, isClass, err := p.classEscape()
	if err != nil {
		return automaton.Charset{}, err
	}
	if isClass {
		return set, nil
	}
	if !p.alphabet.Has(b) {
		return automaton.Charset{}, p.parseError(at, rule.UnknownSymbol)
	}
	var out automaton.Charset
	out.Add(b)
	return out, nil
}

// classEscape parses a backslash sequence. The named classes \d, \w
// and \s return their expansion intersected with the alphabet; other
// escapes return the single byte they denote.
func (p *parser) classEscape() (set automaton.Charset, b byte, isClass bool, err error) {
	at := p.pos
	p.pos++ // consume '\'
	if p.pos >= len(p.pattern) {
		return set, 0, false, p.parseError(at, rule.TrailingEscape)
	}
	c := p.pattern[p.pos]
	p.pos++

	switch c {
	case 'd':
		set.AddRange('0', '9')
		return set.Intersect(p.alphabet), 0, true, nil
	case 'w':
		set.AddRange('0', '9')
		set.AddRange('A', 'Z')
		set.AddRange('a', 'z')
		set.Add('_')
		return set.Intersect(p.alphabet), 0, true, nil
	case 's':
		set.Add(' ')
		set.Add('\t')
		set.Add('\n')
		set.Add('\r')
		set.Add('\f')
		set.Add('\v')
		return set.Intersect(p.alphabet), 0, true, nil
	}

	b, ok := escapedByte(c)
	if !ok {
		return set, 0, false, p.parseError(at, rule.UnknownSymbol)
	}
	return set, b, false, nil
}

// escapedByte maps an escape character to the byte it denotes.
// Letters and digits other than the named control escapes carry no
// meaning and are rejected.
func escapedByte(c byte) (byte, bool) {
	switch c {
	case 't':
		return '\t', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	}
	if c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
		return 0, false
	}
	return c, true
}

// class parses a character class: members and lo-hi ranges, with a
// leading '^' complementing against the alphabet. A '-' that is the
// first or last member is literal. Range interiors are intersected
// with the alphabet; explicitly written symbols must be in it.
func (p *parser) class() (*regexNode, error) {
	open := p.pos
	p.pos++ // consume '['
	negate := false
	if p.pos < len(p.pattern) && p.pattern[p.pos] == '^' {
		negate = true
		p.pos++
	}

	var set automaton.Charset
	for {
		if p.pos >= len(p.pattern) {
			return nil, p.parseError(open, rule.UnbalancedClass)
		}
		if p.pattern[p.pos] == ']' {
			p.pos++
			break
		}

		elemAt := p.pos
		var lo byte
		if p.pattern[p.pos] == '\\' {
			cls, b, isClass, err := p.classEscape()
			if err != nil {
				return nil, err
			}
			if isClass {
				set = set.Union(cls)
				continue
			}
			lo = b
		} else {
			lo = p.pattern[p.pos]
			p.pos++
		}
		if !p.alphabet.Has(lo) {
			return nil, p.parseError(elemAt, rule.UnknownSymbol)
		}

		// A '-' between two members forms a range unless it is the
		// last member before ']'.
		if p.pos+1 < len(p.pattern) && p.pattern[p.pos] == '-' && p.pattern[p.pos+1] != ']' {
			p.pos++ // consume '-'
			hiAt := p.pos
			var hi byte
			if p.pattern[p.pos] == '\\' {
				_, b, isClass, err := p.classEscape()
				if err != nil {
					return nil, err
				}
				if isClass {
					return nil, p.parseError(hiAt, rule.BadClassRange)
				}
				hi = b
			} else {
				hi = p.pattern[p.pos]
				p.pos++
			}
			if !p.alphabet.Has(hi) {
				return nil, p.parseError(hiAt, rule.UnknownSymbol)
			}
			if hi < lo {
				return nil, p.parseError(elemAt, rule.BadClassRange)
			}
			for b := int(lo); b <= int(hi); b++ {
				if p.alphabet.Has(byte(b)) {
					set.Add(byte(b))
				}
			}
			continue
		}
		set.Add(lo)
	}

	if negate {
		set = p.alphabet.Diff(set)
	}
	return &regexNode{op: opLiteral, set: set}, nil
}
