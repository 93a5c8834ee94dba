package automaton

import "iter"

// Step is a read-only snapshot of one simulation transition.
type Step struct {
	// Pos is the number of input bytes consumed so far. On a reject
	// step it is the offset of the byte that had no transition.
	Pos int

	// State is the machine state after the transition, or Reject when
	// the symbol had no transition.
	State int

	// Symbol is the byte consumed to reach State, or -1 on the initial
	// step, which reports the start state before any input.
	Symbol int

	// Tag is the winning accepted tag at State, or -1 when State is
	// not accepting.
	Tag int
}

// Simulation steps an automaton over input one symbol at a time. The
// run ends after the whole input is consumed or after a single reject
// step for the first symbol with no transition.
type Simulation struct {
	a       *Automaton
	input   string
	pos     int
	state   int
	started bool
	dead    bool
}

// Simulate starts a fresh run over input from the start state.
func (a *Automaton) Simulate(input string) *Simulation {
	return &Simulation{a: a, input: input, state: a.start}
}

// Next returns the next step of the run. The first step reports the
// start state with no symbol consumed. ok is false once the run has
// ended.
func (s *Simulation) Next() (step Step, ok bool) {
	if s.dead {
		return Step{}, false
	}
	if !s.started {
		s.started = true
		return s.snapshot(-1), true
	}
	if s.pos >= len(s.input) {
		return Step{}, false
	}

	c := s.input[s.pos]
	next := s.a.Step(s.state, c)
	if next == Reject {
		s.dead = true
		return Step{Pos: s.pos, State: Reject, Symbol: int(c), Tag: -1}, true
	}
	s.pos++
	s.state = next
	return s.snapshot(int(c)), true
}

// Reset rewinds the run to the start state so it can be replayed.
func (s *Simulation) Reset() {
	s.pos = 0
	s.state = s.a.start
	s.started = false
	s.dead = false
}

func (s *Simulation) snapshot(symbol int) Step {
	return Step{Pos: s.pos, State: s.state, Symbol: symbol, Tag: s.a.winner(s.state)}
}

// Steps returns the run as a range-over-func iterator. Every range
// statement starts a fresh run, so the sequence is restartable.
func (a *Automaton) Steps(input string) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		sim := a.Simulate(input)
		for step, ok := sim.Next(); ok; step, ok = sim.Next() {
			if !yield(step) {
				return
			}
		}
	}
}
