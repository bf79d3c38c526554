package calc

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text of a number.
	name string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // push num

	nodePos  // evaluate left
	nodeNeg  // evaluate left, then negate
	nodeFact // evaluate left, then factorial

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodeMod // evaluate left, rem by right
	nodePow // evaluate left, exp by right
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

// unary reports whether the node kind has only a left operand.
func (k nodeKind) unary() bool {
	return k == nodePos || k == nodeNeg || k == nodeFact
}

// symbol is the operator text for the node kind.
func (k nodeKind) symbol() string {
	switch k {
	case nodePos, nodeAdd:
		return "+"
	case nodeNeg, nodeSub:
		return "-"
	case nodeFact:
		return "!"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeMod:
		return "%"
	case nodePow:
		return "^"
	default:
		return ""
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node with every subexpression parenthesized. The output
// parses back to the same tree.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.name)
	case nodePos, nodeNeg:
		b.WriteString(n.kind.symbol())
		n.left.fmt(b)
	case nodeFact:
		// ! only applies to a bare literal.
		if n.left.kind != nodeNum {
			panic("calc: factorial of non-literal " + n.left.String())
		}
		b.WriteString(n.left.name)
		b.WriteByte('!')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.kind.symbol())
		b.WriteByte(' ')
		n.right.fmt(b)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
