package calc

import (
	"io"
	"math/big"
	"strings"
)

// Postfix is an expression compiled to postfix order. It is evaluated on a
// context's value stack without building a syntax tree.
type Postfix struct {
	steps []step
}

// step is one instruction of a postfix program: push a number, or apply an
// operator to the values on top of the stack.
type step struct {
	kind nodeKind
	name string
}

// String formats the program in reverse Polish notation. Unary plus and minus
// are written as pos and neg to distinguish them from the binary operators.
func (p *Postfix) String() string {
	var b strings.Builder
	for i, s := range p.steps {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s.kind {
		case nodeNum:
			b.WriteString(s.name)
		case nodePos:
			b.WriteString("pos")
		case nodeNeg:
			b.WriteString("neg")
		default:
			b.WriteString(s.kind.symbol())
		}
	}
	return b.String()
}

// Compiler converts expressions to postfix programs using the shunting-yard
// algorithm. It accepts exactly the same inputs as Parser. A Compiler may be
// reused for any number of inputs, but it is not safe to use concurrently.
type Compiler struct {
	scan *lexer
	ops  []pending
	// nest counts the unary operators and open parentheses in ops.
	nest int
}

// pending is an operator or open parenthesis waiting on the operator stack.
// Parentheses have an op of nodeNone.
type pending struct {
	op  operator
	tok lexToken
}

// NewCompiler creates a compiler.
func NewCompiler() *Compiler {
	return &Compiler{scan: lex(strings.NewReader(""))}
}

// Compile compiles an entire input as one expression.
func (c *Compiler) Compile(src io.RuneScanner) (*Postfix, error) {
	c.scan.reset(src)
	c.ops = c.ops[:0]
	c.nest = 0
	var out []step
	// operand indicates that the next token must begin an operand.
	operand := true
	for {
		tok, err := c.scan.next()
		if err != nil {
			return nil, err
		}
		if operand {
			switch tok.kind {
			case tokenNum:
				out = append(out, step{kind: nodeNum, name: tok.text})
				next, err := c.scan.peek()
				if err != nil {
					return nil, err
				}
				if next.kind == tokenFact {
					c.scan.must()
					out = append(out, step{kind: nodeFact})
				}
				operand = false
			case tokenPlus, tokenMinus:
				if err := c.enter(unop(tok.kind), tok); err != nil {
					return nil, err
				}
			case tokenOpen:
				if err := c.enter(operator{}, tok); err != nil {
					return nil, err
				}
			default:
				return nil, &SyntaxError{Col: tok.pos, Got: tok.describe(), Want: "operand"}
			}
			continue
		}
		switch tok.kind {
		case tokenPlus, tokenMinus, tokenMul, tokenDiv, tokenMod, tokenPow:
			op := binop(tok.kind)
			for len(c.ops) > 0 {
				top := c.ops[len(c.ops)-1]
				if top.op.op == nodeNone || op.moreBinding(top.op) {
					break
				}
				out = append(out, c.pop())
			}
			c.ops = append(c.ops, pending{op: op, tok: tok})
			operand = true
		case tokenClose:
			for len(c.ops) > 0 && c.ops[len(c.ops)-1].op.op != nodeNone {
				out = append(out, c.pop())
			}
			if len(c.ops) == 0 {
				return nil, &SyntaxError{Col: tok.pos, Got: tok.describe(), Want: tokenEOF.describe()}
			}
			c.pop()
		case tokenEOF:
			for len(c.ops) > 0 {
				if c.ops[len(c.ops)-1].op.op == nodeNone {
					return nil, &SyntaxError{Col: tok.pos, Got: tok.describe(), Want: tokenClose.describe()}
				}
				out = append(out, c.pop())
			}
			return &Postfix{steps: out}, nil
		default:
			// A complete operand followed by something that can't continue it.
			want := tokenEOF.describe()
			if c.open() {
				want = tokenClose.describe()
			}
			return nil, &SyntaxError{Col: tok.pos, Got: tok.describe(), Want: want}
		}
	}
}

// CompileString compiles a string as one expression.
func (c *Compiler) CompileString(text string) (*Postfix, error) {
	return c.Compile(strings.NewReader(text))
}

// enter pushes a unary operator or open parenthesis, which nest.
func (c *Compiler) enter(op operator, tok lexToken) error {
	c.nest++
	if c.nest > MaxDepth {
		return &DepthError{Col: tok.pos, Max: MaxDepth}
	}
	c.ops = append(c.ops, pending{op: op, tok: tok})
	return nil
}

// pop removes the top of the operator stack and returns it as a step.
func (c *Compiler) pop() step {
	p := c.ops[len(c.ops)-1]
	c.ops = c.ops[:len(c.ops)-1]
	if p.op.op == nodeNone || p.op.op.unary() {
		c.nest--
	}
	return step{kind: p.op.op}
}

// open reports whether there is an unclosed parenthesis.
func (c *Compiler) open() bool {
	for _, p := range c.ops {
		if p.op.op == nodeNone {
			return true
		}
	}
	return false
}

// EvalPostfix evaluates a postfix program and returns the result. If an error
// occurs, e.g. a division by zero, then the result is nil.
func (ctx *Context) EvalPostfix(p *Postfix) (*big.Float, error) {
	ctx.begin()
	for _, s := range p.steps {
		if s.kind == nodeNum {
			ctx.num(s.name)
			continue
		}
		if err := ctx.apply(s.kind); err != nil {
			ctx.stack = ctx.stack[:0]
			return nil, err
		}
	}
	return ctx.result(), nil
}
