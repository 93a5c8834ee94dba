package automaton

import (
	"strings"
	"testing"
)

func TestFormatSymbol(t *testing.T) {
	tests := []struct {
		c    byte
		want string
	}{
		{'a', "a"},
		{'+', "+"},
		{'\t', `\t`},
		{'\n', `\n`},
		{'\r', `\r`},
		{' ', "' '"},
		{0x01, "0x01"},
		{0xff, "0xff"},
	}

	for _, tt := range tests {
		if got := FormatSymbol(tt.c); got != tt.want {
			t.Errorf("FormatSymbol(%#x) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestArcLabel(t *testing.T) {
	if got := (Arc{Lo: 'a', Hi: 'a'}).Label(); got != "a" {
		t.Errorf("single byte label = %q, want %q", got, "a")
	}
	if got := (Arc{Lo: 'a', Hi: 'z'}).Label(); got != "a-z" {
		t.Errorf("range label = %q, want %q", got, "a-z")
	}
}

func TestDOT(t *testing.T) {
	a := testAutomaton(t)
	dot := a.DOT()

	for _, want := range []string{
		"digraph automaton {",
		"rankdir=LR;",
		"start -> s0;",
		"doublecircle",
		`s0 -> s2 [label="a-h j-z"];`,
		`s0 -> s1 [label="i"];`,
		`s3 [shape=doublecircle, label="3\nIF"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output is missing %q:\n%s", want, dot)
		}
	}
}
