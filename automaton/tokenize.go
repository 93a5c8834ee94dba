package automaton

import (
	"fmt"
	"iter"
)

// Token is a classified lexeme with its source position. Start and
// End are byte offsets; Line and Column are 1-based and refer to the
// first byte of the lexeme.
type Token struct {
	Kind   string
	Lexeme string
	Tag    int
	Start  int
	End    int
	Line   int
	Column int
}

// NoMatchError reports input that no rule matches, with the offset of
// the first byte the scan could not get past.
type NoMatchError struct {
	Offset int
	Line   int
	Column int
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no rule matches input at offset %d (line %d, column %d)",
		e.Offset, e.Line, e.Column)
}

// Scanner splits input into tokens by maximal munch: each scan takes
// the longest match from the current offset, and among rules matching
// that longest lexeme the earliest-declared one wins. Empty matches
// are never committed, so a nullable rule cannot stall the scan.
type Scanner struct {
	a      *Automaton
	input  string
	offset int
	line   int
	col    int
	tok    Token
	err    error
	done   bool
}

// NewScanner returns a scanner over input. Like bufio.Scanner, drive
// it with Scan and check Err when Scan returns false.
func NewScanner(a *Automaton, input string) *Scanner {
	return &Scanner{a: a, input: input, line: 1, col: 1}
}

// Scan advances to the next token. It returns false at end of input
// or when no rule matches; Err tells the two apart.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	if s.offset >= len(s.input) {
		s.done = true
		return false
	}

	start := s.offset
	state := s.a.start
	lastEnd := -1
	lastTag := -1
	for i := start; i < len(s.input); i++ {
		state = s.a.Step(state, s.input[i])
		if state == Reject {
			break
		}
		if tag := s.a.winner(state); tag >= 0 {
			lastEnd = i + 1
			lastTag = tag
		}
	}
	if lastEnd < 0 {
		s.err = &NoMatchError{Offset: start, Line: s.line, Column: s.col}
		return false
	}

	lexeme := s.input[start:lastEnd]
	s.tok = Token{
		Kind:   s.a.tags[lastTag].Name,
		Lexeme: lexeme,
		Tag:    lastTag,
		Start:  start,
		End:    lastEnd,
		Line:   s.line,
		Column: s.col,
	}
	s.advance(lexeme)
	s.offset = lastEnd
	return true
}

// Token returns the token found by the last call to Scan.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error that stopped scanning, or nil after a clean
// end of input.
func (s *Scanner) Err() error { return s.err }

// advance moves the line and column counters past the lexeme.
func (s *Scanner) advance(lexeme string) {
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
}

// Tokenize scans input as a range-over-func iterator. The returned
// error function is valid once iteration stops: it reports the scan
// failure, or nil after a clean end of input. The sequence is single
// use; call Tokenize again for a fresh scan.
func Tokenize(a *Automaton, input string) (iter.Seq[Token], func() error) {
	s := NewScanner(a, input)
	seq := func(yield func(Token) bool) {
		for s.Scan() {
			if !yield(s.Token()) {
				return
			}
		}
	}
	return seq, s.Err
}

// All scans input eagerly and returns every token, including tokens
// of skip-marked kinds.
func All(a *Automaton, input string) ([]Token, error) {
	var tokens []Token
	s := NewScanner(a, input)
	for s.Scan() {
		tokens = append(tokens, s.Token())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
