package calc

import (
	"math/big"
	"strconv"
	"strings"
)

// Mode selects how a Calculator evaluates expressions.
type Mode int

const (
	// ModeTree parses expressions into syntax trees and walks them.
	ModeTree Mode = iota
	// ModePostfix compiles expressions to postfix order and evaluates them on
	// a value stack.
	ModePostfix
)

func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModePostfix:
		return "postfix"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode gets the mode named by s. Besides the names returned by
// Mode.String, "parser" and "2" select ModeTree, and "stack" and "1" select
// ModePostfix.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tree", "parser", "2":
		return ModeTree, true
	case "postfix", "stack", "1":
		return ModePostfix, true
	default:
		return 0, false
	}
}

// Calculator evaluates expressions one after another, reusing its parser and
// context. It is not safe to use a Calculator concurrently; concurrent callers
// should each have their own.
type Calculator struct {
	mode Mode
	p    *Parser
	c    *Compiler
	ctx  *Context
}

// NewCalculator creates a calculator using the given evaluation mode and
// context options.
func NewCalculator(mode Mode, opts ...ContextOption) *Calculator {
	calc := Calculator{mode: mode, ctx: NewContext(opts...)}
	switch mode {
	case ModeTree:
		calc.p = NewParser()
	case ModePostfix:
		calc.c = NewCompiler()
	default:
		panic("calc: invalid mode " + mode.String())
	}
	return &calc
}

// Mode returns the calculator's evaluation mode.
func (calc *Calculator) Mode() Mode {
	return calc.mode
}

// Eval evaluates an expression. The empty string evaluates to zero. An error
// from one expression has no effect on later ones.
func (calc *Calculator) Eval(text string) (*big.Float, error) {
	if text == "" {
		return new(big.Float).SetPrec(calc.ctx.Prec()), nil
	}
	if calc.mode == ModePostfix {
		p, err := calc.c.CompileString(text)
		if err != nil {
			return nil, err
		}
		return calc.ctx.EvalPostfix(p)
	}
	e, err := calc.p.ParseString(text)
	if err != nil {
		return nil, err
	}
	return calc.ctx.Eval(e)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return NewCalculator(ModeTree, opts...).Eval(src)
}
