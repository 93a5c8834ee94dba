// Package stream tokenizes arbitrarily large inputs with bounded
// memory. Input is read in chunks from an io.Reader and tokens are
// delivered through a callback as soon as their right edge is known,
// so a multi-gigabyte log can be scanned without holding it in memory.
//
// Example usage:
//
//	file, _ := os.Open("big.log")
//	defer file.Close()
//
//	err := stream.Tokens(a, file, stream.DefaultConfig(), func(t automaton.Token) bool {
//	    fmt.Printf("%d: %s %q\n", t.Start, t.Kind, t.Lexeme)
//	    return true // continue
//	})
package stream

import (
	"fmt"
	"io"

	"github.com/lexvi/lexvi/automaton"
)

// Config configures chunked reading behavior.
type Config struct {
	// BufferSize is the chunk size for reading from the io.Reader.
	// Default: 64KB (65536).
	// Larger values reduce syscall overhead but use more memory.
	BufferSize int

	// MaxTokenLength caps buffer growth while a single token is still
	// open. A token that outgrows the buffer keeps forcing it to grow
	// until the token settles or this cap is passed, at which point
	// the scan aborts with ErrTokenTooLong. Tokens that fit in an
	// already filled buffer are never cut short.
	//
	// Default: 1MB. Values below BufferSize are raised to BufferSize.
	MaxTokenLength int
}

// DefaultConfig returns a Config with sensible defaults.
// BufferSize defaults to 64KB and MaxTokenLength to 1MB.
func DefaultConfig() Config {
	return Config{
		BufferSize:     64 * 1024,
		MaxTokenLength: 1 << 20,
	}
}

// Validate validates the Config and returns an error if invalid.
func (c Config) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer size cannot be negative")
	}
	if c.MaxTokenLength < 0 {
		return fmt.Errorf("max token length cannot be negative")
	}
	return nil
}

// ApplyDefaults returns a Config with defaults applied for any zero
// values.
func (c Config) ApplyDefaults() Config {
	result := c
	if result.BufferSize == 0 {
		result.BufferSize = 64 * 1024
	}
	if result.MaxTokenLength == 0 {
		result.MaxTokenLength = 1 << 20
	}
	if result.MaxTokenLength < result.BufferSize {
		result.MaxTokenLength = result.BufferSize
	}
	return result
}

// ErrTokenTooLong is returned when a single token grows past
// Config.MaxTokenLength before its right edge is known.
type ErrTokenTooLong struct {
	Offset int // byte offset of the token's first byte
	Limit  int
}

func (e ErrTokenTooLong) Error() string {
	return fmt.Sprintf("stream: token starting at offset %d exceeds %d bytes", e.Offset, e.Limit)
}

// Tokens scans r and calls fn for each token in input order. Scanning
// follows the same maximal munch rules as automaton.Tokenize, and
// token offsets, lines and columns are absolute within the stream.
//
// Tokens of skip-marked kinds are delivered like any other; filter on
// a.Tag(t.Tag).Skip to drop them. The Lexeme is copied out of the
// read buffer, so it stays valid after the callback returns. Return
// false from fn to stop early; Tokens then returns nil.
func Tokens(a *automaton.Automaton, r io.Reader, cfg Config, fn func(automaton.Token) bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.ApplyDefaults()

	s := &scanner{
		a:       a,
		r:       r,
		winners: winnerTable(a),
		buf:     make([]byte, 0, cfg.BufferSize),
		limit:   cfg.MaxTokenLength,
		line:    1,
		col:     1,
	}
	for {
		for len(s.buf) == 0 {
			if s.eof {
				return nil
			}
			if err := s.fill(); err != nil {
				return err
			}
		}
		tok, err := s.next()
		if err != nil {
			return err
		}
		if !fn(tok) {
			return nil
		}
	}
}

// Count scans r and returns the number of tokens without retaining
// them. Skip-marked kinds are counted too.
func Count(a *automaton.Automaton, r io.Reader, cfg Config) (int, error) {
	var count int
	err := Tokens(a, r, cfg, func(automaton.Token) bool {
		count++
		return true
	})
	return count, err
}

// scanner holds the unconsumed tail of the stream. The token in
// flight always starts at buf[0]; base, line and col locate buf[0]
// within the whole stream.
type scanner struct {
	a       *automaton.Automaton
	r       io.Reader
	winners []int
	buf     []byte
	base    int
	limit   int
	line    int
	col     int
	eof     bool
}

// winnerTable caches the committing tag per state so the hot loop
// avoids the copy AcceptedTags makes.
func winnerTable(a *automaton.Automaton) []int {
	winners := make([]int, a.NumStates())
	for id := range winners {
		winners[id] = -1
		if tags := a.AcceptedTags(id); len(tags) > 0 {
			winners[id] = tags[0]
		}
	}
	return winners
}

// next settles one token starting at buf[0], refilling the buffer as
// long as the automaton is still alive at its end.
func (s *scanner) next() (automaton.Token, error) {
	state := s.a.Start()
	lastEnd := -1
	lastTag := -1
	i := 0
	for {
		for ; i < len(s.buf); i++ {
			state = s.a.Step(state, s.buf[i])
			if state == automaton.Reject {
				return s.settle(lastEnd, lastTag)
			}
			if tag := s.winners[state]; tag >= 0 {
				lastEnd = i + 1
				lastTag = tag
			}
		}
		if s.eof {
			return s.settle(lastEnd, lastTag)
		}
		if len(s.buf) > s.limit {
			return automaton.Token{}, ErrTokenTooLong{Offset: s.base, Limit: s.limit}
		}
		if err := s.fill(); err != nil {
			return automaton.Token{}, err
		}
	}
}

// settle commits the longest accepted prefix, or reports that no rule
// matches at the token start. Bytes past the committed end stay
// buffered for the next token.
func (s *scanner) settle(lastEnd, lastTag int) (automaton.Token, error) {
	if lastEnd < 0 {
		return automaton.Token{}, &automaton.NoMatchError{Offset: s.base, Line: s.line, Column: s.col}
	}
	lexeme := string(s.buf[:lastEnd])
	tok := automaton.Token{
		Kind:   s.a.Tag(lastTag).Name,
		Lexeme: lexeme,
		Tag:    lastTag,
		Start:  s.base,
		End:    s.base + lastEnd,
		Line:   s.line,
		Column: s.col,
	}
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
	s.base += lastEnd
	s.buf = append(s.buf[:0], s.buf[lastEnd:]...)
	return tok, nil
}

// maxEmptyReads bounds retries on readers that return neither data
// nor an error, mirroring bufio.
const maxEmptyReads = 100

// fill reads one chunk behind the buffered bytes, doubling the buffer
// when a token in flight has filled it.
func (s *scanner) fill() error {
	if len(s.buf) == cap(s.buf) {
		grown := make([]byte, len(s.buf), 2*cap(s.buf))
		copy(grown, s.buf)
		s.buf = grown
	}
	for try := 0; try < maxEmptyReads; try++ {
		n, err := s.r.Read(s.buf[len(s.buf):cap(s.buf)])
		s.buf = s.buf[:len(s.buf)+n]
		if err == io.EOF {
			s.eof = true
			return nil
		}
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
	return io.ErrNoProgress
}
