package automaton

import (
	"testing"

	"github.com/d4l3k/messagediff"
)

// testAutomaton hand-builds the minimized machine for the rules
// IF:"if", ID:"[a-z]+", NL:"\n" (skip) over the alphabet a-z plus
// newline.
func testAutomaton(t *testing.T) *Automaton {
	t.Helper()
	var alpha Charset
	alpha.AddRange('a', 'z')
	alpha.Add('\n')

	a, err := New(Config{
		Start:    0,
		Alphabet: alpha,
		Tags:     []Tag{{Name: "IF"}, {Name: "ID"}, {Name: "NL", Skip: true}},
		States: []StateConfig{
			{Arcs: []Arc{{'a', 'h', 2}, {'i', 'i', 1}, {'j', 'z', 2}, {'\n', '\n', 4}}},
			{Tags: []int{1}, Arcs: []Arc{{'a', 'e', 2}, {'f', 'f', 3}, {'g', 'z', 2}}},
			{Tags: []int{1}, Arcs: []Arc{{'a', 'z', 2}}},
			{Tags: []int{0, 1}, Arcs: []Arc{{'a', 'z', 2}}},
			{Tags: []int{2}},
		},
	})
	if err != nil {
		t.Fatalf("failed to build automaton: %v", err)
	}
	return a
}

func TestNewAccessors(t *testing.T) {
	a := testAutomaton(t)

	if a.NumStates() != 5 {
		t.Errorf("NumStates() = %d, want 5", a.NumStates())
	}
	if a.Start() != 0 {
		t.Errorf("Start() = %d, want 0", a.Start())
	}
	if a.NumTags() != 3 {
		t.Errorf("NumTags() = %d, want 3", a.NumTags())
	}
	if tag := a.Tag(2); tag.Name != "NL" || !tag.Skip {
		t.Errorf("Tag(2) = %+v, want NL with Skip", tag)
	}
	if a.Accepting(0) {
		t.Error("start state should not be accepting")
	}
	if !a.Accepting(3) {
		t.Error("state 3 should be accepting")
	}

	want := []int{0, 1}
	if diff, equal := messagediff.PrettyDiff(want, a.AcceptedTags(3)); !equal {
		t.Errorf("AcceptedTags(3) mismatch:\n%s", diff)
	}

	// Arcs come back sorted and compressed even though the config
	// listed them out of byte order.
	wantArcs := []Arc{{'\n', '\n', 4}, {'a', 'h', 2}, {'i', 'i', 1}, {'j', 'z', 2}}
	if diff, equal := messagediff.PrettyDiff(wantArcs, a.Arcs(0)); !equal {
		t.Errorf("Arcs(0) mismatch:\n%s", diff)
	}
}

func TestNewValidation(t *testing.T) {
	var alpha Charset
	alpha.AddRange('a', 'z')
	tags := []Tag{{Name: "A"}}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"no states", Config{Alphabet: alpha, Tags: tags}},
		{"start out of range", Config{
			Start: 2, Alphabet: alpha, Tags: tags,
			States: []StateConfig{{}},
		}},
		{"empty alphabet", Config{
			Tags:   tags,
			States: []StateConfig{{}},
		}},
		{"tag out of range", Config{
			Alphabet: alpha, Tags: tags,
			States: []StateConfig{{Tags: []int{1}}},
		}},
		{"inverted arc bounds", Config{
			Alphabet: alpha, Tags: tags,
			States: []StateConfig{{Arcs: []Arc{{'z', 'a', 0}}}},
		}},
		{"arc target out of range", Config{
			Alphabet: alpha, Tags: tags,
			States: []StateConfig{{Arcs: []Arc{{'a', 'a', 3}}}},
		}},
		{"transition outside alphabet", Config{
			Alphabet: alpha, Tags: tags,
			States: []StateConfig{{Arcs: []Arc{{'0', '0', 0}}}},
		}},
		{"conflicting transitions", Config{
			Alphabet: alpha, Tags: tags,
			States: []StateConfig{
				{Arcs: []Arc{{'a', 'c', 0}, {'b', 'b', 1}}},
				{},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestStep(t *testing.T) {
	a := testAutomaton(t)

	tests := []struct {
		state int
		c     byte
		want  int
	}{
		{0, 'i', 1},
		{0, 'x', 2},
		{0, '\n', 4},
		{1, 'f', 3},
		{1, 'q', 2},
		{3, 'z', 2},
		{4, 'a', Reject},
		{0, '0', Reject},
		{Reject, 'a', Reject},
		{99, 'a', Reject},
	}

	for _, tt := range tests {
		if got := a.Step(tt.state, tt.c); got != tt.want {
			t.Errorf("Step(%d, %q) = %d, want %d", tt.state, tt.c, got, tt.want)
		}
	}
}

func TestEquivalentTo(t *testing.T) {
	a := testAutomaton(t)

	if !a.EquivalentTo(testAutomaton(t)) {
		t.Error("automaton should be equivalent to an identical build")
	}

	// Same machine with states 1 and 2 swapped.
	var alpha Charset
	alpha.AddRange('a', 'z')
	alpha.Add('\n')
	swapped, err := New(Config{
		Start:    0,
		Alphabet: alpha,
		Tags:     []Tag{{Name: "IF"}, {Name: "ID"}, {Name: "NL", Skip: true}},
		States: []StateConfig{
			{Arcs: []Arc{{'a', 'h', 1}, {'i', 'i', 2}, {'j', 'z', 1}, {'\n', '\n', 4}}},
			{Tags: []int{1}, Arcs: []Arc{{'a', 'z', 1}}},
			{Tags: []int{1}, Arcs: []Arc{{'a', 'e', 1}, {'f', 'f', 3}, {'g', 'z', 1}}},
			{Tags: []int{0, 1}, Arcs: []Arc{{'a', 'z', 1}}},
			{Tags: []int{2}},
		},
	})
	if err != nil {
		t.Fatalf("failed to build swapped automaton: %v", err)
	}
	if !a.EquivalentTo(swapped) {
		t.Error("renumbered automaton should be equivalent")
	}

	// Change the accepted tag set of one state.
	different, err := New(Config{
		Start:    0,
		Alphabet: alpha,
		Tags:     []Tag{{Name: "IF"}, {Name: "ID"}, {Name: "NL", Skip: true}},
		States: []StateConfig{
			{Arcs: []Arc{{'a', 'h', 2}, {'i', 'i', 1}, {'j', 'z', 2}, {'\n', '\n', 4}}},
			{Tags: []int{1}, Arcs: []Arc{{'a', 'e', 2}, {'f', 'f', 3}, {'g', 'z', 2}}},
			{Tags: []int{1}, Arcs: []Arc{{'a', 'z', 2}}},
			{Tags: []int{0}, Arcs: []Arc{{'a', 'z', 2}}},
			{Tags: []int{2}},
		},
	})
	if err != nil {
		t.Fatalf("failed to build differing automaton: %v", err)
	}
	if a.EquivalentTo(different) {
		t.Error("automata with different accepting tags should not be equivalent")
	}

	if a.EquivalentTo(nil) {
		t.Error("nothing is equivalent to nil")
	}
}
