package compiler

import (
	"errors"

	"github.com/lexvi/lexvi/automaton"
	"github.com/lexvi/lexvi/rule"
)

// nfaArc is a consuming transition over a set of bytes.
type nfaArc struct {
	set automaton.Charset
	to  int
}

// nfaState lives in a flat arena; edges are state indexes, never
// pointers, so loops (Star back-edges) stay simple index references.
type nfaState struct {
	arcs []nfaArc
	eps  []int
	tag  int // accepted rule index, -1 when not accepting
}

// nfa is the combined machine for a whole rule set.
type nfa struct {
	states []nfaState
	start  int
}

// frag is a fragment under construction with one start and one end
// state.
type frag struct {
	start, end int
}

type nfaBuilder struct {
	states []nfaState
}

func (b *nfaBuilder) newState() int {
	b.states = append(b.states, nfaState{tag: -1})
	return len(b.states) - 1
}

func (b *nfaBuilder) addEps(from, to int) {
	b.states[from].eps = append(b.states[from].eps, to)
}

func (b *nfaBuilder) addArc(from int, set automaton.Charset, to int) {
	b.states[from].arcs = append(b.states[from].arcs, nfaArc{set: set, to: to})
}

// compile lowers an AST node to a fragment by structural recursion
// over the Thompson construction: every operator allocates fresh
// start and end states glued in with epsilon edges.
func (b *nfaBuilder) compile(node *regexNode) frag {
	switch node.op {
	case opLiteral:
		start := b.newState()
		end := b.newState()
		b.addArc(start, node.set, end)
		return frag{start, end}

	case opConcat:
		left := b.compile(node.left)
		right := b.compile(node.right)
		b.addEps(left.end, right.start)
		return frag{left.start, right.end}

	case opAlternate:
		left := b.compile(node.left)
		right := b.compile(node.right)
		start := b.newState()
		end := b.newState()
		b.addEps(start, left.start)
		b.addEps(start, right.start)
		b.addEps(left.end, end)
		b.addEps(right.end, end)
		return frag{start, end}

	case opStar:
		inner := b.compile(node.left)
		start := b.newState()
		end := b.newState()
		b.addEps(start, inner.start)
		b.addEps(start, end)
		b.addEps(inner.end, inner.start)
		b.addEps(inner.end, end)
		return frag{start, end}

	case opPlus:
		inner := b.compile(node.left)
		start := b.newState()
		end := b.newState()
		b.addEps(start, inner.start)
		b.addEps(inner.end, inner.start)
		b.addEps(inner.end, end)
		return frag{start, end}

	case opOptional:
		inner := b.compile(node.left)
		start := b.newState()
		end := b.newState()
		b.addEps(start, inner.start)
		b.addEps(start, end)
		b.addEps(inner.end, end)
		return frag{start, end}

	case opGroup:
		return b.compile(node.left)
	}
	panic("compiler: unknown regex node")
}

// buildNFA parses every rule and joins the per-rule fragments under
// one start state, so the machine tries every pattern at once. Each
// fragment's end state accepts its rule's index as tag.
func buildNFA(rules []rule.Rule, alphabet automaton.Charset) (*nfa, error) {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if seen[r.Name] {
			return nil, &rule.DuplicateNameError{Name: r.Name}
		}
		seen[r.Name] = true
	}

	b := &nfaBuilder{}
	start := b.newState()
	for i, r := range rules {
		node, err := parsePattern(r.Pattern, alphabet)
		if err != nil {
			var perr *rule.PatternError
			if errors.As(err, &perr) {
				perr.Rule = r.Name
			}
			return nil, err
		}
		f := b.compile(node)
		b.states[f.end].tag = i
		b.addEps(start, f.start)
	}
	return &nfa{states: b.states, start: start}, nil
}
