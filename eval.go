package calc

import (
	"math/big"
	"strconv"
)

// DefaultFactorialLimit is the largest operand of ! that a Context accepts
// unless configured otherwise.
const DefaultFactorialLimit = 10000

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Float
	prec  uint
	fact  uint64
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt uint
	factopt uint64
)

func (precopt) ctxOption() {}
func (factopt) ctxOption() {}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// FactorialLimit sets the largest operand that ! accepts. Larger operands are
// domain errors.
func FactorialLimit(n uint64) ContextOption {
	return factopt(n)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64, fact: DefaultFactorialLimit}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		prec:  ctx.prec,
		fact:  ctx.fact,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case precopt:
			n.prec = uint(opt)
		case factopt:
			n.fact = uint64(opt)
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. a division by zero, then the result is nil.
func (ctx *Context) Eval(e *Expr) (*big.Float, error) {
	ctx.begin()
	if err := e.n.eval(ctx); err != nil {
		ctx.stack = ctx.stack[:0]
		return nil, err
	}
	return ctx.result(), nil
}

// begin checks that the context is ready to evaluate a new expression.
func (ctx *Context) begin() {
	if len(ctx.stack) != 0 {
		panic("calc: Eval during Eval")
	}
}

// result removes the single remaining value from the stack and returns it. The
// context never modifies the returned value afterward.
func (ctx *Context) result() *big.Float {
	if len(ctx.stack) != 1 {
		panic("calc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
	r := ctx.stack[0]
	ctx.stack[0] = nil
	ctx.stack = ctx.stack[:0]
	return r
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num pushes the value of a numeral.
func (ctx *Context) num(s string) {
	r := ctx.push()
	r.SetPrec(ctx.prec)
	if _, _, err := r.Parse(s, 10); err != nil {
		// The lexer only produces plain decimal numerals.
		panic("calc: invalid number: " + s + " (" + err.Error() + ")")
	}
}

// apply replaces the operands of an operator on the top of the stack with its
// result.
func (ctx *Context) apply(kind nodeKind) error {
	switch kind {
	case nodePos:
		// do nothing
	case nodeNeg:
		v := ctx.top()
		v.Neg(v)
	case nodeFact:
		v := ctx.top()
		return factorial(v, v, ctx.fact)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		r := ctx.pop()
		l := ctx.top()
		return binary(kind, l, r)
	default:
		panic("calc: invalid operator " + kind.String())
	}
	return nil
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		ctx.num(n.name)
		return nil
	case nodePos, nodeNeg, nodeFact:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
	return ctx.apply(n.kind)
}
