package automaton

import (
	"testing"

	"github.com/d4l3k/messagediff"
)

func collectSteps(sim *Simulation) []Step {
	var steps []Step
	for step, ok := sim.Next(); ok; step, ok = sim.Next() {
		steps = append(steps, step)
	}
	return steps
}

func TestSimulate(t *testing.T) {
	a := testAutomaton(t)

	got := collectSteps(a.Simulate("if"))
	want := []Step{
		{Pos: 0, State: 0, Symbol: -1, Tag: -1},
		{Pos: 1, State: 1, Symbol: 'i', Tag: 1},
		{Pos: 2, State: 3, Symbol: 'f', Tag: 0},
	}
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("steps mismatch:\n%s", diff)
	}
}

func TestSimulateDeadState(t *testing.T) {
	a := testAutomaton(t)

	got := collectSteps(a.Simulate("i0x"))
	want := []Step{
		{Pos: 0, State: 0, Symbol: -1, Tag: -1},
		{Pos: 1, State: 1, Symbol: 'i', Tag: 1},
		{Pos: 1, State: Reject, Symbol: '0', Tag: -1},
	}
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("steps mismatch:\n%s", diff)
	}

	// The run is over after the reject step.
	sim := a.Simulate("i0x")
	for _, ok := sim.Next(); ok; _, ok = sim.Next() {
	}
	if _, ok := sim.Next(); ok {
		t.Error("Next() should keep returning ok=false after the run ends")
	}
}

func TestSimulateEmptyInput(t *testing.T) {
	a := testAutomaton(t)

	got := collectSteps(a.Simulate(""))
	want := []Step{{Pos: 0, State: 0, Symbol: -1, Tag: -1}}
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("steps mismatch:\n%s", diff)
	}
}

func TestSimulationReset(t *testing.T) {
	a := testAutomaton(t)

	sim := a.Simulate("if")
	first := collectSteps(sim)
	sim.Reset()
	second := collectSteps(sim)
	if diff, equal := messagediff.PrettyDiff(first, second); !equal {
		t.Errorf("replay after Reset differs:\n%s", diff)
	}
}

func TestStepsIterator(t *testing.T) {
	a := testAutomaton(t)

	var got []Step
	for step := range a.Steps("if") {
		got = append(got, step)
	}
	want := collectSteps(a.Simulate("if"))
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("iterator and Simulation disagree:\n%s", diff)
	}

	// Ranging again restarts from the start state.
	var restarted []Step
	for step := range a.Steps("if") {
		restarted = append(restarted, step)
		break
	}
	if len(restarted) != 1 || restarted[0].State != 0 {
		t.Errorf("restarted range should begin at the start state, got %+v", restarted)
	}
}
