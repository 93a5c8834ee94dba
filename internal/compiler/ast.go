package compiler

import "github.com/lexvi/lexvi/automaton"

// nodeOp enumerates the regex AST node kinds.
type nodeOp int

const (
	opLiteral nodeOp = iota // one symbol drawn from a set of bytes
	opConcat
	opAlternate
	opStar
	opPlus
	opOptional
	opGroup
)

// regexNode is one node of a parsed pattern. Literal nodes carry the
// byte set they match; Concat and Alternate use left and right; the
// postfix operators and Group use left only.
type regexNode struct {
	op    nodeOp
	set   automaton.Charset
	left  *regexNode
	right *regexNode
}

// countNodes returns the size of the tree, for pipeline logging.
func countNodes(n *regexNode) int {
	if n == nil {
		return 0
	}
	return 1 + countNodes(n.left) + countNodes(n.right)
}
