package compiler

import (
	"strconv"
	"strings"

	"github.com/lexvi/lexvi/automaton"
)

// minimize prunes unreachable states, then merges indistinguishable
// ones by Moore-style partition refinement. States with different
// winning tags start in different blocks and are never merged, so
// token identities survive even when the unlabelled machines would
// collapse. Output states are renumbered in breadth-first order from
// the start state for stable ids.
func minimize(d *dfa, alphabet automaton.Charset) *dfa {
	symbols := alphabet.Symbols()

	// Step 1: forward reachability from the start state.
	reach := make([]bool, len(d.states))
	reach[d.start] = true
	queue := []int{d.start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range symbols {
			if to := d.states[id].next[c]; to != automaton.Reject && !reach[to] {
				reach[to] = true
				queue = append(queue, to)
			}
		}
	}

	// Step 2: initial partition by (accepting, winning tag).
	part := make([]int, len(d.states))
	byWinner := make(map[int]int)
	blocks := 0
	for id := range d.states {
		if !reach[id] {
			part[id] = -1
			continue
		}
		w := winnerTag(d.states[id].tags)
		b, ok := byWinner[w]
		if !ok {
			b = blocks
			blocks++
			byWinner[w] = b
		}
		part[id] = b
	}

	// Refine by transition signature until a fixed point. Block count
	// can only grow; an unchanged count means no block split.
	for {
		next := make(map[string]int)
		newPart := make([]int, len(d.states))
		newBlocks := 0
		for id := range d.states {
			if part[id] < 0 {
				newPart[id] = -1
				continue
			}
			sig := blockSignature(d, part, id, symbols)
			b, ok := next[sig]
			if !ok {
				b = newBlocks
				newBlocks++
				next[sig] = b
			}
			newPart[id] = b
		}
		part = newPart
		if newBlocks == blocks {
			break
		}
		blocks = newBlocks
	}

	// Pick the lowest state id in each block as representative; its
	// transitions and tag set carry over unchanged.
	repr := make(map[int]int)
	for id := range d.states {
		if b := part[id]; b >= 0 {
			if _, ok := repr[b]; !ok {
				repr[b] = id
			}
		}
	}

	// Renumber blocks breadth-first from the start block.
	renumber := map[int]int{part[d.start]: 0}
	order := []int{part[d.start]}
	for i := 0; i < len(order); i++ {
		st := &d.states[repr[order[i]]]
		for _, c := range symbols {
			if to := st.next[c]; to != automaton.Reject {
				if _, ok := renumber[part[to]]; !ok {
					renumber[part[to]] = len(order)
					order = append(order, part[to])
				}
			}
		}
	}

	out := &dfa{states: make([]dfaState, len(order))}
	for i, b := range order {
		src := &d.states[repr[b]]
		st := dfaState{tags: append([]int(nil), src.tags...)}
		for j := range st.next {
			st.next[j] = automaton.Reject
		}
		for _, c := range symbols {
			if to := src.next[c]; to != automaton.Reject {
				st.next[c] = renumber[part[to]]
			}
		}
		out.states[i] = st
	}
	return out
}

// blockSignature fingerprints a state by its own block and the block
// each symbol moves to. Two states share a signature only if they are
// currently indistinguishable.
func blockSignature(d *dfa, part []int, id int, symbols []byte) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(part[id]))
	for _, c := range symbols {
		sb.WriteByte('.')
		if to := d.states[id].next[c]; to == automaton.Reject {
			sb.WriteByte('r')
		} else {
			sb.WriteString(strconv.Itoa(part[to]))
		}
	}
	return sb.String()
}

// winnerTag returns the lowest-priority tag, or -1 for a non-accepting
// state.
func winnerTag(tags []int) int {
	if len(tags) == 0 {
		return -1
	}
	return tags[0]
}
