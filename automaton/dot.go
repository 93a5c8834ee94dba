package automaton

import (
	"fmt"
	"strings"
)

// FormatSymbol renders a byte for display: printable ASCII as itself,
// common control characters by escape name, everything else in hex.
func FormatSymbol(c byte) string {
	switch c {
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case ' ':
		return "' '"
	}
	if c >= 0x21 && c <= 0x7e {
		return string(c)
	}
	return fmt.Sprintf("0x%02x", c)
}

// Label renders the arc's byte range for display, e.g. "a-z" or "+".
func (a Arc) Label() string {
	if a.Lo == a.Hi {
		return FormatSymbol(a.Lo)
	}
	return FormatSymbol(a.Lo) + "-" + FormatSymbol(a.Hi)
}

// DOT renders the automaton in Graphviz DOT format: a left-to-right
// graph with double circles for accepting states labelled with their
// winning tag, and one edge per target state carrying the grouped
// range labels.
func (a *Automaton) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph automaton {\n")
	sb.WriteString("\trankdir=LR;\n")
	sb.WriteString("\tnode [shape=circle];\n")
	sb.WriteString("\tstart [shape=point];\n")
	fmt.Fprintf(&sb, "\tstart -> s%d;\n", a.start)

	for id := range a.states {
		if a.Accepting(id) {
			tag := a.tags[a.winner(id)]
			fmt.Fprintf(&sb, "\ts%d [shape=doublecircle, label=\"%d\\n%s\"];\n",
				id, id, dotEscape(tag.Name))
		} else {
			fmt.Fprintf(&sb, "\ts%d [label=\"%d\"];\n", id, id)
		}
	}

	for id := range a.states {
		labels := make(map[int][]string)
		var order []int
		for _, arc := range a.states[id].arcs {
			if _, ok := labels[arc.Target]; !ok {
				order = append(order, arc.Target)
			}
			labels[arc.Target] = append(labels[arc.Target], arc.Label())
		}
		for _, target := range order {
			fmt.Fprintf(&sb, "\ts%d -> s%d [label=\"%s\"];\n",
				id, target, dotEscape(strings.Join(labels[target], " ")))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// dotEscape escapes backslashes and quotes for DOT label strings.
func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
