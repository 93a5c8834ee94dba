package compiler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lexvi/lexvi/automaton"
)

// dfaState is a dense-row deterministic state. next maps every byte
// to a state id or automaton.Reject; tags holds accepted rule indexes
// sorted ascending, so tags[0] is the winning tag.
type dfaState struct {
	next [256]int
	tags []int
}

// dfa is the internal deterministic machine passed between subset
// construction, minimization and assembly.
type dfa struct {
	states []dfaState
	start  int
}

// epsClosure expands a state set over epsilon edges. The result is
// sorted so it can serve as a canonical map key.
func epsClosure(n *nfa, set []int) []int {
	seen := make(map[int]bool, len(set))
	stack := append([]int(nil), set...)
	for _, id := range set {
		seen[id] = true
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range n.states[id].eps {
			if !seen[to] {
				seen[to] = true
				stack = append(stack, to)
			}
		}
	}

	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// setKey builds the canonical key for a sorted state set. Subset
// equality, not identity, decides whether a DFA state already exists.
func setKey(set []int) string {
	var sb strings.Builder
	for i, id := range set {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}

// determinize runs the classical subset construction: DFA states are
// epsilon-closures of NFA state sets, discovered breadth-first from
// the closure of the NFA start. State ids follow discovery order, so
// the same NFA always yields the same numbering.
func determinize(n *nfa, alphabet automaton.Charset) *dfa {
	d := &dfa{}
	ids := make(map[string]int)
	var subsets [][]int

	addState := func(set []int) int {
		key := setKey(set)
		if id, ok := ids[key]; ok {
			return id
		}
		id := len(d.states)
		ids[key] = id

		var st dfaState
		for i := range st.next {
			st.next[i] = automaton.Reject
		}
		for _, nid := range set {
			if tag := n.states[nid].tag; tag >= 0 {
				st.tags = append(st.tags, tag)
			}
		}
		sort.Ints(st.tags)

		d.states = append(d.states, st)
		subsets = append(subsets, set)
		return id
	}

	symbols := alphabet.Symbols()
	d.start = addState(epsClosure(n, []int{n.start}))

	for work := 0; work < len(d.states); work++ {
		set := subsets[work]
		for _, c := range symbols {
			var move []int
			for _, nid := range set {
				for _, arc := range n.states[nid].arcs {
					if arc.set.Has(c) {
						move = append(move, arc.to)
					}
				}
			}
			if len(move) == 0 {
				continue
			}
			sort.Ints(move)
			move = dedup(move)
			// addState may grow d.states; index only after it returns.
			next := addState(epsClosure(n, move))
			d.states[work].next[c] = next
		}
	}
	return d
}

// dedup removes adjacent duplicates from a sorted slice.
func dedup(a []int) []int {
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
