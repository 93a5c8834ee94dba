package automaton

import (
	"fmt"
	"sort"
)

// Reject marks the absence of a transition. Step returns it when the
// machine has no move for a symbol.
const Reject = -1

// Tag is one token identity an automaton can accept. Tags are indexed
// by declaration order: a lower index outranks a higher one when a
// state accepts several.
type Tag struct {
	Name string
	Skip bool
}

// Arc is a compressed transition: every byte from Lo to Hi inclusive
// moves to Target.
type Arc struct {
	Lo, Hi byte
	Target int
}

// Config describes an automaton for New. State ids are indexes into
// States; transitions outside the alphabet or conflicting arcs are
// rejected.
type Config struct {
	Start    int
	States   []StateConfig
	Alphabet Charset
	Tags     []Tag
}

// StateConfig describes one state. A state is accepting exactly when
// Tags is non-empty; Tags holds accepted tag indexes and is sorted by
// New.
type StateConfig struct {
	Tags []int
	Arcs []Arc
}

type state struct {
	tags []int
	arcs []Arc
	next [256]int
}

// Automaton is an immutable deterministic machine. Once built it is
// safe to share across concurrent simulations and scans.
type Automaton struct {
	states   []state
	start    int
	alphabet Charset
	tags     []Tag
}

// New validates a configuration and builds the automaton. Transitions
// are stored both as a dense table for stepping and as canonical
// compressed arcs for display.
func New(cfg Config) (*Automaton, error) {
	if len(cfg.States) == 0 {
		return nil, fmt.Errorf("automaton has no states")
	}
	if cfg.Start < 0 || cfg.Start >= len(cfg.States) {
		return nil, fmt.Errorf("start state %d out of range", cfg.Start)
	}
	if cfg.Alphabet.Count() == 0 {
		return nil, fmt.Errorf("alphabet cannot be empty")
	}

	a := &Automaton{
		start:    cfg.Start,
		alphabet: cfg.Alphabet,
		tags:     append([]Tag(nil), cfg.Tags...),
	}
	a.states = make([]state, len(cfg.States))

	for id, sc := range cfg.States {
		st := &a.states[id]
		for i := range st.next {
			st.next[i] = Reject
		}

		st.tags = append([]int(nil), sc.Tags...)
		sort.Ints(st.tags)
		st.tags = dedupInts(st.tags)
		for _, tag := range st.tags {
			if tag < 0 || tag >= len(cfg.Tags) {
				return nil, fmt.Errorf("state %d: tag %d out of range", id, tag)
			}
		}

		for _, arc := range sc.Arcs {
			if arc.Lo > arc.Hi {
				return nil, fmt.Errorf("state %d: arc bounds inverted (%d > %d)", id, arc.Lo, arc.Hi)
			}
			if arc.Target < 0 || arc.Target >= len(cfg.States) {
				return nil, fmt.Errorf("state %d: arc target %d out of range", id, arc.Target)
			}
			for c := int(arc.Lo); c <= int(arc.Hi); c++ {
				if !cfg.Alphabet.Has(byte(c)) {
					return nil, fmt.Errorf("state %d: transition on %q outside the alphabet", id, byte(c))
				}
				if st.next[c] != Reject && st.next[c] != arc.Target {
					return nil, fmt.Errorf("state %d: conflicting transitions on %q", id, byte(c))
				}
				st.next[c] = arc.Target
			}
		}

		st.arcs = compressRow(&st.next)
	}

	return a, nil
}

// compressRow rebuilds canonical arcs from a dense row: maximal runs
// of consecutive bytes with the same target, in ascending order.
func compressRow(next *[256]int) []Arc {
	var arcs []Arc
	c := 0
	for c < 256 {
		if next[c] == Reject {
			c++
			continue
		}
		lo, target := c, next[c]
		for c < 256 && next[c] == target {
			c++
		}
		arcs = append(arcs, Arc{Lo: byte(lo), Hi: byte(c - 1), Target: target})
	}
	return arcs
}

// NumStates returns the number of states.
func (a *Automaton) NumStates() int { return len(a.states) }

// Start returns the start state id.
func (a *Automaton) Start() int { return a.start }

// Alphabet returns the symbol set the automaton runs over.
func (a *Automaton) Alphabet() Charset { return a.alphabet }

// NumTags returns the number of token identities.
func (a *Automaton) NumTags() int { return len(a.tags) }

// Tag returns the token identity with the given index.
func (a *Automaton) Tag(id int) Tag {
	if id < 0 || id >= len(a.tags) {
		return Tag{}
	}
	return a.tags[id]
}

// Accepting reports whether the state accepts any tag.
func (a *Automaton) Accepting(id int) bool {
	return id >= 0 && id < len(a.states) && len(a.states[id].tags) > 0
}

// AcceptedTags returns the tag indexes a state accepts, in priority
// order. The first entry is the tag a match in this state commits.
func (a *Automaton) AcceptedTags(id int) []int {
	if id < 0 || id >= len(a.states) {
		return nil
	}
	return append([]int(nil), a.states[id].tags...)
}

// Arcs returns the state's outgoing transitions in canonical
// compressed form.
func (a *Automaton) Arcs(id int) []Arc {
	if id < 0 || id >= len(a.states) {
		return nil
	}
	return append([]Arc(nil), a.states[id].arcs...)
}

// Step returns the state reached from id on symbol c, or Reject when
// there is no transition.
func (a *Automaton) Step(id int, c byte) int {
	if id < 0 || id >= len(a.states) {
		return Reject
	}
	return a.states[id].next[c]
}

// winner returns the highest-priority accepted tag, or -1 when the
// state is not accepting.
func (a *Automaton) winner(id int) int {
	if id < 0 || id >= len(a.states) || len(a.states[id].tags) == 0 {
		return -1
	}
	return a.states[id].tags[0]
}

// EquivalentTo reports whether two automata have the same alphabet,
// tags and reachable transition structure up to state renumbering.
func (a *Automaton) EquivalentTo(b *Automaton) bool {
	if b == nil || a.alphabet != b.alphabet || len(a.tags) != len(b.tags) {
		return false
	}
	for i := range a.tags {
		if a.tags[i] != b.tags[i] {
			return false
		}
	}

	symbols := a.alphabet.Symbols()
	pair := map[int]int{a.start: b.start}
	back := map[int]int{b.start: a.start}
	queue := []int{a.start}

	for len(queue) > 0 {
		sa := queue[0]
		queue = queue[1:]
		sb := pair[sa]
		if !equalInts(a.states[sa].tags, b.states[sb].tags) {
			return false
		}
		for _, c := range symbols {
			na, nb := a.states[sa].next[c], b.states[sb].next[c]
			if (na == Reject) != (nb == Reject) {
				return false
			}
			if na == Reject {
				continue
			}
			ma, okA := pair[na]
			mb, okB := back[nb]
			if okA != okB {
				return false
			}
			if okA {
				if ma != nb || mb != na {
					return false
				}
				continue
			}
			pair[na] = nb
			back[nb] = na
			queue = append(queue, na)
		}
	}
	return true
}

func dedupInts(a []int) []int {
	if len(a) < 2 {
		return a
	}
	out := a[:1]
	for _, v := range a[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
