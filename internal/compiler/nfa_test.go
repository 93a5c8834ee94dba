package compiler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/lexvi/lexvi/rule"
)

// buildOne builds the NFA for a single anonymous rule.
func buildOne(t *testing.T, pattern, chars string) *nfa {
	t.Helper()
	n, err := buildNFA([]rule.Rule{{Name: "A", Pattern: pattern}}, alphaOf(chars))
	if err != nil {
		t.Fatalf("buildNFA(%q): %v", pattern, err)
	}
	return n
}

func TestBuildNFALiteral(t *testing.T) {
	n := buildOne(t, "a", "ab")

	// Shared start, then the literal's two states.
	if len(n.states) != 3 {
		t.Fatalf("states = %d, want 3", len(n.states))
	}
	if n.start != 0 {
		t.Errorf("start = %d, want 0", n.start)
	}
	if diff, equal := messagediff.PrettyDiff([]int{1}, n.states[0].eps); !equal {
		t.Errorf("start eps mismatch:\n%s", diff)
	}
	arcs := n.states[1].arcs
	if len(arcs) != 1 || arcs[0].to != 2 || !arcs[0].set.Has('a') || arcs[0].set.Has('b') {
		t.Errorf("literal arc wrong: %+v", arcs)
	}
	if n.states[2].tag != 0 {
		t.Errorf("end tag = %d, want 0", n.states[2].tag)
	}
	if n.states[0].tag != -1 || n.states[1].tag != -1 {
		t.Error("only the fragment end should accept")
	}
}

func TestBuildNFAConcat(t *testing.T) {
	n := buildOne(t, "ab", "ab")

	// Two literal fragments joined by one epsilon edge, never merged.
	if len(n.states) != 5 {
		t.Fatalf("states = %d, want 5", len(n.states))
	}
	if diff, equal := messagediff.PrettyDiff([]int{3}, n.states[2].eps); !equal {
		t.Errorf("join eps mismatch:\n%s", diff)
	}
	if n.states[4].tag != 0 {
		t.Errorf("end tag = %d, want 0", n.states[4].tag)
	}
}

func TestBuildNFAAlternate(t *testing.T) {
	n := buildOne(t, "a|b", "ab")

	// Literals at 1-2 and 3-4, fresh start 5 and end 6.
	if len(n.states) != 7 {
		t.Fatalf("states = %d, want 7", len(n.states))
	}
	if diff, equal := messagediff.PrettyDiff([]int{5}, n.states[0].eps); !equal {
		t.Errorf("start eps mismatch:\n%s", diff)
	}
	if diff, equal := messagediff.PrettyDiff([]int{1, 3}, n.states[5].eps); !equal {
		t.Errorf("fan-out eps mismatch:\n%s", diff)
	}
	if diff, equal := messagediff.PrettyDiff([]int{6}, n.states[2].eps); !equal {
		t.Errorf("left join eps mismatch:\n%s", diff)
	}
	if diff, equal := messagediff.PrettyDiff([]int{6}, n.states[4].eps); !equal {
		t.Errorf("right join eps mismatch:\n%s", diff)
	}
	if n.states[6].tag != 0 {
		t.Errorf("end tag = %d, want 0", n.states[6].tag)
	}
}

func TestBuildNFARepetition(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		// epsilon edges out of the operator's fresh start (state 3)
		// and out of the inner fragment's end (state 2).
		wantStartEps []int
		wantInnerEps []int
	}{
		{"star", "a*", []int{1, 4}, []int{1, 4}},
		{"plus", "a+", []int{1}, []int{1, 4}},
		{"optional", "a?", []int{1, 4}, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := buildOne(t, tt.pattern, "ab")
			if len(n.states) != 5 {
				t.Fatalf("states = %d, want 5", len(n.states))
			}
			if diff, equal := messagediff.PrettyDiff(tt.wantStartEps, n.states[3].eps); !equal {
				t.Errorf("operator start eps mismatch:\n%s", diff)
			}
			if diff, equal := messagediff.PrettyDiff(tt.wantInnerEps, n.states[2].eps); !equal {
				t.Errorf("inner end eps mismatch:\n%s", diff)
			}
			if n.states[4].tag != 0 {
				t.Errorf("end tag = %d, want 0", n.states[4].tag)
			}
		})
	}
}

func TestBuildNFAGroupIsTransparent(t *testing.T) {
	plain := buildOne(t, "ab", "ab")
	grouped := buildOne(t, "(ab)", "ab")
	if !reflect.DeepEqual(plain, grouped) {
		t.Errorf("grouping should not change the machine:\nplain:   %+v\ngrouped: %+v", plain, grouped)
	}
}

func TestBuildNFAMultipleRules(t *testing.T) {
	rules := []rule.Rule{
		{Name: "A", Pattern: "a"},
		{Name: "B", Pattern: "b"},
	}
	n, err := buildNFA(rules, alphaOf("ab"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One shared start fanning out to every rule's fragment.
	if diff, equal := messagediff.PrettyDiff([]int{1, 3}, n.states[0].eps); !equal {
		t.Errorf("start eps mismatch:\n%s", diff)
	}
	if n.states[2].tag != 0 {
		t.Errorf("first rule tag = %d, want 0", n.states[2].tag)
	}
	if n.states[4].tag != 1 {
		t.Errorf("second rule tag = %d, want 1", n.states[4].tag)
	}
}

func TestBuildNFADuplicateName(t *testing.T) {
	rules := []rule.Rule{
		{Name: "A", Pattern: "a"},
		{Name: "A", Pattern: "b"},
	}
	_, err := buildNFA(rules, alphaOf("ab"))
	var derr *rule.DuplicateNameError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if derr.Name != "A" {
		t.Errorf("Name = %q, want %q", derr.Name, "A")
	}
}

func TestBuildNFAAttachesRuleName(t *testing.T) {
	rules := []rule.Rule{
		{Name: "GOOD", Pattern: "a"},
		{Name: "BAD", Pattern: "[a"},
	}
	_, err := buildNFA(rules, alphaOf("ab"))
	var perr *rule.PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PatternError, got %v", err)
	}
	if perr.Rule != "BAD" {
		t.Errorf("Rule = %q, want %q", perr.Rule, "BAD")
	}
	if perr.Reason != rule.UnbalancedClass {
		t.Errorf("Reason = %v, want %v", perr.Reason, rule.UnbalancedClass)
	}
}
