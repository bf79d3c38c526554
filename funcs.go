package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// binary sets l to the result of a binary operator applied to l and r. r is
// not modified.
func binary(kind nodeKind, l, r *big.Float) (err error) {
	// A panicking operation clobbers l, so remember whether it was infinite.
	linf, lneg := l.IsInf(), l.Signbit()
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		// Operations on infinities that have no value, e.g. inf-inf, panic
		// with big.ErrNaN. The infinite operand is the one at fault.
		if _, ok := p.(big.ErrNaN); ok {
			if linf {
				err = &DomainError{X: new(big.Float).SetInf(lneg), Arg: 1, Func: kind.symbol()}
				return
			}
			err = &DomainError{X: new(big.Float).Copy(r), Arg: 2, Func: kind.symbol()}
			return
		}
		panic(p)
	}()
	switch kind {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		if r.Sign() == 0 {
			return &DomainError{X: new(big.Float).Copy(r), Arg: 2, Func: "/"}
		}
		l.Quo(l, r)
	case nodeMod:
		return rem(l, l, r)
	case nodePow:
		return pow(l, l, r)
	default:
		panic("calc: invalid binary operator " + kind.String())
	}
	return nil
}

// rem sets z to the remainder of x/y truncated toward zero, so the result has
// the sign of x. z may alias x.
func rem(z, x, y *big.Float) error {
	switch {
	case y.Sign() == 0:
		return &DomainError{X: new(big.Float).Copy(y), Arg: 2, Func: "%"}
	case x.IsInf():
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "%"}
	case y.IsInf(), x.Sign() == 0:
		z.Set(x)
		return nil
	}
	// The quotient needs enough precision to hold its integer part exactly.
	// Rounding toward zero then makes its integer part the truncated quotient.
	prec := z.Prec()
	if d := x.MantExp(nil) - y.MantExp(nil) + 1; d > 0 {
		prec += uint(d)
	}
	q := new(big.Float).SetPrec(prec).SetMode(big.ToZero).Quo(x, y)
	qi, _ := q.Int(nil)
	if qi.Sign() == 0 {
		z.Set(x)
		return nil
	}
	wide := uint(qi.BitLen()) + x.Prec() + y.Prec() + 64
	t := new(big.Float).SetPrec(wide).SetInt(qi)
	t.Mul(t, y)
	t.Sub(x, t)
	z.Set(t)
	return nil
}

// pow sets z to x raised to the power y. z may alias x.
func pow(z, x, y *big.Float) error {
	if y.IsInt() {
		if x.Sign() == 0 && y.Sign() < 0 {
			return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"}
		}
		if n, acc := y.Int64(); acc == big.Exact {
			powInt(z, x, n)
			return nil
		}
		odd := false
		if x.Signbit() {
			yi, _ := y.Int(nil)
			odd = yi.Bit(0) == 1
		}
		powHuge(z, x, y.Sign(), x.Signbit() && odd)
		return nil
	}
	switch x.Sign() {
	case -1:
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"}
	case 0:
		if y.Sign() < 0 {
			return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "^"}
		}
		z.SetInt64(0)
		return nil
	}
	if x.IsInf() || y.IsInf() {
		powHuge(z, x, y.Sign(), false)
		return nil
	}
	// x^y = x^n * x^f with n the integer part of y and |f| < 1.
	yi, _ := y.Int(nil)
	if !yi.IsInt64() {
		powHuge(z, x, y.Sign(), false)
		return nil
	}
	f := new(big.Float).SetPrec(y.Prec()).SetInt(yi)
	f.Sub(y, f)
	prec := workprec(z, x)
	a := new(big.Float).SetPrec(prec)
	powInt(a, x, yi.Int64())
	b := new(big.Float).SetPrec(prec)
	powFrac(b, x, f)
	z.Mul(a, b)
	return nil
}

// powHuge sets z to x raised to an exponent too large in magnitude to
// compute, with sign ysign. The result is ±Inf, ±0, or ±1 by the magnitude
// of x. neg gives the sign of the result. z may alias x.
func powHuge(z, x *big.Float, ysign int, neg bool) {
	c := new(big.Float).Abs(x).Cmp(big.NewFloat(1))
	switch {
	case c == 0:
		z.SetInt64(1)
	case (c > 0) == (ysign > 0):
		z.SetInf(false)
	default:
		z.SetInt64(0)
	}
	if neg {
		z.Neg(z)
	}
}

// powFrac sets z to x^f for finite positive x and 0 < |f| < 1. Writing x as
// m * 2^e with m in [0.5, 1) keeps the arguments of bigfloat.Pow near 1:
// x^f = m^f * 2^g * 2^k where e*f = k + g and |g| < 1.
func powFrac(z, x, f *big.Float) {
	prec := workprec(z, x) + 32
	m := new(big.Float)
	e := x.MantExp(m)
	m.SetPrec(prec)
	r := new(big.Float).SetPrec(prec)
	r.Set(bigfloat.Pow(r, m, f))
	k := int64(0)
	if e != 0 {
		ef := new(big.Float).SetPrec(f.Prec() + 64).SetInt64(int64(e))
		ef.Mul(ef, f)
		k, _ = ef.Int64()
		g := new(big.Float).SetPrec(ef.Prec()).SetInt64(k)
		g.Sub(ef, g)
		if g.Sign() != 0 {
			two := new(big.Float).SetPrec(prec).SetInt64(2)
			t := new(big.Float).SetPrec(prec)
			r.Mul(r, bigfloat.Pow(t, two, g))
		}
	}
	z.SetMantExp(r, int(k))
}

// workprec is the precision at which to compute a result stored in z.
func workprec(z, x *big.Float) uint {
	if z.Prec() != 0 {
		return z.Prec()
	}
	return x.Prec()
}

// powInt sets z to x^n by repeated squaring. z may alias x.
func powInt(z, x *big.Float, n int64) {
	prec := workprec(z, x) + 32
	neg := n < 0
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}
	b := new(big.Float).SetPrec(prec).Set(x)
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	for u != 0 {
		if u&1 != 0 {
			r.Mul(r, b)
		}
		u >>= 1
		if u != 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		r.Quo(new(big.Float).SetPrec(prec).SetInt64(1), r)
	}
	z.Set(r)
}

// factorial sets z to x!. x must be a non-negative integer no greater than
// limit. z may alias x.
func factorial(z, x *big.Float, limit uint64) error {
	if x.Sign() < 0 || !x.IsInt() {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "!"}
	}
	n, acc := x.Uint64()
	if acc != big.Exact || n > limit || n > math.MaxInt64 {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "!", Limit: true}
	}
	var v big.Int
	v.MulRange(1, int64(n))
	z.SetInt(&v)
	return nil
}

// DomainError is an error returned when an operator is applied to operands
// outside its domain, such as division by zero or the factorial of a
// fraction.
type DomainError struct {
	// X is the out-of-domain operand.
	X *big.Float
	// Arg is the 1-based index of the operand.
	Arg int
	// Func is the operator symbol.
	Func string
	// Limit indicates that X is in the mathematical domain but exceeds a
	// configured limit.
	Limit bool
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Limit {
		r = err.X.String() + " exceeds limit"
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (operand " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
