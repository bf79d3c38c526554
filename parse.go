package calc

import (
	"io"
	"strings"
)

// Expr = Term { ('+' | '-') Term }
// Term = Factor { ('*' | '/' | '%' | '^') Factor }
// Factor = '+' Factor | '-' Factor | num [ '!' ] | '(' Expr ')'

// MaxDepth is the deepest nesting of parentheses and unary operators that a
// Parser accepts.
const MaxDepth = 1000

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// String creates a string representation of the parsed expression with each
// term in parentheses.
func (e *Expr) String() string {
	return e.n.String()
}

// Parser parses expressions into syntax trees. A Parser may be reused for any
// number of inputs, but it is not safe to use concurrently.
type Parser struct {
	scan *lexer
	// tok is the lookahead, the next token not yet consumed.
	tok   lexToken
	depth int
}

// NewParser creates a parser.
func NewParser() *Parser {
	return &Parser{scan: lex(strings.NewReader(""))}
}

// Parse parses an entire input as one expression. Any state left from a
// previous parse is discarded first.
func (p *Parser) Parse(src io.RuneScanner) (*Expr, error) {
	p.scan.reset(src)
	p.tok = lexToken{}
	p.depth = 0
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, p.unexpected(tokenEOF.describe())
	}
	return &Expr{n: n}, nil
}

// ParseString parses a string as one expression.
func (p *Parser) ParseString(text string) (*Expr, error) {
	return p.Parse(strings.NewReader(text))
}

// Parse is a shortcut to parse an expression with a new Parser.
func Parse(src io.RuneScanner) (*Expr, error) {
	return NewParser().Parse(src)
}

// advance replaces the lookahead with the next token from the lexer.
func (p *Parser) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// consume advances past the lookahead if it has the given kind. Otherwise,
// the lookahead is left in place and the result is a syntax error.
func (p *Parser) consume(kind tokenKind) error {
	if p.tok.kind != kind {
		return p.unexpected(kind.describe())
	}
	return p.advance()
}

// enter records one more level of nesting.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return &DepthError{Col: p.tok.pos, Max: MaxDepth}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) unexpected(want string) error {
	return &SyntaxError{Col: p.tok.pos, Got: p.tok.describe(), Want: want}
}

// expr parses a sum of terms.
func (p *Parser) expr() (*node, error) {
	n, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op := binop(p.tok.kind)
		if op.prec != sumprec.prec {
			return n, nil
		}
		if err := p.consume(p.tok.kind); err != nil {
			return nil, err
		}
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		n = &node{kind: op.op, left: n, right: rhs}
	}
}

// term parses a product of factors. Exponentiation is a product here, so it
// groups to the left like the others.
func (p *Parser) term() (*node, error) {
	n, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		op := binop(p.tok.kind)
		if op.prec != termprec.prec {
			return n, nil
		}
		if err := p.consume(p.tok.kind); err != nil {
			return nil, err
		}
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		n = &node{kind: op.op, left: n, right: rhs}
	}
}

// factor parses a signed factor, a number with optional factorial, or a
// parenthesized expression.
func (p *Parser) factor() (*node, error) {
	switch p.tok.kind {
	case tokenPlus, tokenMinus:
		op := unop(p.tok.kind)
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.consume(p.tok.kind); err != nil {
			return nil, err
		}
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &node{kind: op.op, left: rhs}, nil
	case tokenNum:
		n := &node{kind: nodeNum, name: p.tok.text}
		// ! applies only directly to a literal, so decide here rather than in
		// term.
		next, err := p.scan.peek()
		if err != nil {
			return nil, err
		}
		if err := p.consume(tokenNum); err != nil {
			return nil, err
		}
		if next.kind == tokenFact {
			if err := p.consume(tokenFact); err != nil {
				return nil, err
			}
			n = &node{kind: nodeFact, left: n}
		}
		return n, nil
	case tokenOpen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.consume(tokenOpen); err != nil {
			return nil, err
		}
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.consume(tokenClose); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, p.unexpected("operand")
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token kind. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(kind tokenKind) operator {
	switch kind {
	case tokenPlus:
		return operator{1, false, nodeAdd}
	case tokenMinus:
		return operator{1, false, nodeSub}
	case tokenMul:
		return operator{5, false, nodeMul}
	case tokenDiv:
		return operator{5, false, nodeDiv}
	case tokenMod:
		return operator{5, false, nodeMod}
	case tokenPow:
		return operator{5, false, nodePow}
	default:
		return operator{}
	}
}

// unop gets a prefix unary operator for a token kind. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(kind tokenKind) operator {
	switch kind {
	case tokenPlus:
		return operator{10, true, nodePos}
	case tokenMinus:
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// sumprec is the precedence of addition and subtraction.
	sumprec = binop(tokenPlus)
	// termprec is the precedence of multiplicative operators, including
	// exponentiation.
	termprec = binop(tokenMul)
)
