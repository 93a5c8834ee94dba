package rule

import "fmt"

// Reason classifies what is wrong with a pattern.
type Reason int

const (
	// UnbalancedGroup reports a '(' without a matching ')' or a stray ')'.
	UnbalancedGroup Reason = iota

	// UnbalancedClass reports a '[' without a closing ']'.
	UnbalancedClass

	// EmptyAlternative reports an alternation branch with no content,
	// as in "a|" or "|a". Empty groups and empty patterns are reported
	// the same way.
	EmptyAlternative

	// UnknownSymbol reports a literal symbol outside the configured
	// alphabet, or an escape sequence with no meaning.
	UnknownSymbol

	// DanglingOperator reports a repetition operator with no operand,
	// as in "*abc".
	DanglingOperator

	// TrailingEscape reports a '\' at the end of the pattern.
	TrailingEscape

	// BadClassRange reports a class range with inverted bounds, as in
	// "[z-a]".
	BadClassRange
)

// String returns the reason as a short lowercase phrase.
func (r Reason) String() string {
	switch r {
	case UnbalancedGroup:
		return "unbalanced group"
	case UnbalancedClass:
		return "unbalanced character class"
	case EmptyAlternative:
		return "empty alternative"
	case UnknownSymbol:
		return "unknown symbol"
	case DanglingOperator:
		return "dangling operator"
	case TrailingEscape:
		return "trailing escape"
	case BadClassRange:
		return "bad class range"
	}
	return "invalid pattern"
}

// PatternError reports a syntax error in a rule's pattern. Offset is
// the byte position of the offending character so callers can point
// at it.
type PatternError struct {
	Rule   string // rule name, empty when no rule context is known
	Offset int
	Reason Reason
}

func (e *PatternError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("rule %q: %s at offset %d", e.Rule, e.Reason, e.Offset)
}

// DuplicateNameError reports two rules declared with the same name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate token name %q", e.Name)
}
