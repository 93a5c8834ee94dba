// Package automaton defines the deterministic automaton produced by
// lexer compilation and the simulation and scanning drivers that run
// it over input text.
package automaton

// Charset is a 256-bit bitmap over the byte alphabet. The zero value
// is the empty set. Charsets are small values and compare with ==.
type Charset [32]byte

// Add puts c into the set.
func (s *Charset) Add(c byte) {
	s[c/8] |= 1 << (c % 8)
}

// AddRange puts every byte from lo to hi inclusive into the set.
func (s *Charset) AddRange(lo, hi byte) {
	for c := int(lo); c <= int(hi); c++ {
		s.Add(byte(c))
	}
}

// Remove takes c out of the set.
func (s *Charset) Remove(c byte) {
	s[c/8] &^= 1 << (c % 8)
}

// Has reports whether c is in the set.
func (s Charset) Has(c byte) bool {
	return s[c/8]&(1<<(c%8)) != 0
}

// Count returns the number of bytes in the set.
func (s Charset) Count() int {
	n := 0
	for c := 0; c < 256; c++ {
		if s.Has(byte(c)) {
			n++
		}
	}
	return n
}

// Symbols returns the set members in ascending byte order.
func (s Charset) Symbols() []byte {
	out := make([]byte, 0, s.Count())
	for c := 0; c < 256; c++ {
		if s.Has(byte(c)) {
			out = append(out, byte(c))
		}
	}
	return out
}

// Union returns the set of bytes in s or t.
func (s Charset) Union(t Charset) Charset {
	var out Charset
	for i := range out {
		out[i] = s[i] | t[i]
	}
	return out
}

// Intersect returns the set of bytes in both s and t.
func (s Charset) Intersect(t Charset) Charset {
	var out Charset
	for i := range out {
		out[i] = s[i] & t[i]
	}
	return out
}

// Diff returns the set of bytes in s but not in t.
func (s Charset) Diff(t Charset) Charset {
	var out Charset
	for i := range out {
		out[i] = s[i] &^ t[i]
	}
	return out
}

// DefaultAlphabet returns the alphabet used when none is configured:
// printable ASCII plus tab, newline and carriage return.
func DefaultAlphabet() Charset {
	var s Charset
	s.AddRange(0x20, 0x7e)
	s.Add('\t')
	s.Add('\n')
	s.Add('\r')
	return s
}
