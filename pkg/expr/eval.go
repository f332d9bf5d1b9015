package expr

import (
	"math/big"

	"github.com/pkg/errors"
)

// MaxExponent bounds the magnitude of a '^' exponent.
const MaxExponent = 4096

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
	bigTen = big.NewInt(10)
)

// Eval evaluates node at index n. Every intermediate value is an exact
// rational; the caller decides how to present a non-integer result.
func Eval(node Node, n *big.Int) (*big.Rat, error) {
	switch t := node.(type) {
	case *NumberNode:
		return new(big.Rat).SetInt(t.Val), nil

	case *VarNode:
		return new(big.Rat).SetInt(n), nil

	case *UnaryNode:
		v, err := Eval(t.Operand, n)
		if err != nil {
			return nil, err
		}
		if t.Op == OpNeg {
			v.Neg(v)
		}
		return v, nil

	case *BinaryNode:
		return evalBinary(t, n)

	case *FuncNode:
		return evalFunc(t, n)
	}
	return nil, errors.Wrapf(ErrUnknownNode, "%T", node)
}

func evalBinary(b *BinaryNode, n *big.Int) (*big.Rat, error) {
	left, err := Eval(b.Left, n)
	if err != nil {
		return nil, err
	}
	right, err := Eval(b.Right, n)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case OpAdd:
		return left.Add(left, right), nil
	case OpSub:
		return left.Sub(left, right), nil
	case OpMul:
		return left.Mul(left, right), nil
	case OpDiv:
		if right.Sign() == 0 {
			return nil, errors.Wrapf(ErrDivisionByZero, "%s", b)
		}
		return left.Quo(left, right), nil
	case OpPow:
		return ratPow(left, right)
	}
	return nil, errors.Wrapf(ErrUnknownNode, "binary op %d", b.Op)
}

// ratPow raises base to an integer exponent with |exp| <= MaxExponent.
// 0^0 is 1; a negative exponent yields the reciprocal power.
func ratPow(base, exp *big.Rat) (*big.Rat, error) {
	if !exp.IsInt() {
		return nil, errors.Wrapf(ErrExponentRange, "non-integer exponent %s", exp.RatString())
	}
	e := exp.Num()
	if !e.IsInt64() || e.Int64() > MaxExponent || e.Int64() < -MaxExponent {
		return nil, errors.Wrapf(ErrExponentRange, "exponent %s", e)
	}
	ei := e.Int64()
	neg := ei < 0
	if neg {
		if base.Sign() == 0 {
			return nil, errors.Wrapf(ErrDivisionByZero, "0^%d", ei)
		}
		ei = -ei
	}
	x := big.NewInt(ei)
	num := new(big.Int).Exp(base.Num(), x, nil)
	den := new(big.Int).Exp(base.Denom(), x, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den), nil
}

func evalFunc(f *FuncNode, n *big.Int) (*big.Rat, error) {
	switch f.Func {
	case FuncFloor, FuncCeil, FuncSqrtint:
		if err := checkArity(f, 1, 1); err != nil {
			return nil, err
		}
	case FuncBinomial, FuncGCD:
		if err := checkArity(f, 2, 2); err != nil {
			return nil, err
		}
	case FuncSumdigits:
		if err := checkArity(f, 1, 2); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFunction, "%s", f.Func)
	}

	args := make([]*big.Rat, len(f.Args))
	for i, a := range f.Args {
		v, err := Eval(a, n)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch f.Func {
	case FuncFloor:
		return new(big.Rat).SetInt(floor(args[0])), nil

	case FuncCeil:
		return new(big.Rat).SetInt(ceil(args[0])), nil

	case FuncBinomial:
		nArg, err := toInt(f, args[0])
		if err != nil {
			return nil, err
		}
		kArg, err := toInt(f, args[1])
		if err != nil {
			return nil, err
		}
		return new(big.Rat).SetInt(Binomial(nArg, kArg)), nil

	case FuncSqrtint:
		x, err := toInt(f, args[0])
		if err != nil {
			return nil, err
		}
		if x.Sign() < 0 {
			return nil, errors.Wrapf(ErrNegativeArgument, "sqrtint(%s)", x)
		}
		return new(big.Rat).SetInt(new(big.Int).Sqrt(x)), nil

	case FuncGCD:
		a, err := toInt(f, args[0])
		if err != nil {
			return nil, err
		}
		b, err := toInt(f, args[1])
		if err != nil {
			return nil, err
		}
		return new(big.Rat).SetInt(new(big.Int).GCD(nil, nil, a, b)), nil

	case FuncSumdigits:
		x, err := toInt(f, args[0])
		if err != nil {
			return nil, err
		}
		base := bigTen
		if len(args) == 2 {
			if base, err = toInt(f, args[1]); err != nil {
				return nil, err
			}
		}
		s, err := SumDigits(x, base)
		if err != nil {
			return nil, err
		}
		return new(big.Rat).SetInt(s), nil
	}
	return nil, errors.Wrapf(ErrUnknownFunction, "%s", f.Func)
}

func checkArity(f *FuncNode, lo, hi int) error {
	if n := len(f.Args); n < lo || n > hi {
		if lo == hi {
			return errors.Wrapf(ErrArity, "%s() expects %d, got %d", f.Func, lo, n)
		}
		return errors.Wrapf(ErrArity, "%s() expects %d to %d, got %d", f.Func, lo, hi, n)
	}
	return nil
}

// toInt returns r as an integer if it has no fractional part.
func toInt(f *FuncNode, r *big.Rat) (*big.Int, error) {
	if !r.IsInt() {
		return nil, errors.Wrapf(ErrNonIntegerArgument, "%s() got %s", f.Func, r.RatString())
	}
	return new(big.Int).Set(r.Num()), nil
}

// floor returns the greatest integer <= r. Rat denominators are positive,
// so Euclidean division rounds toward negative infinity.
func floor(r *big.Rat) *big.Int {
	return new(big.Int).Div(r.Num(), r.Denom())
}

func ceil(r *big.Rat) *big.Int {
	c := floor(new(big.Rat).Neg(r))
	return c.Neg(c)
}

// SumDigits returns the sum of the digits of |x| written in the given base.
func SumDigits(x, base *big.Int) (*big.Int, error) {
	if base.Cmp(bigTwo) < 0 {
		return nil, errors.Wrapf(ErrInvalidBase, "got %s", base)
	}
	sum := new(big.Int)
	y := new(big.Int).Abs(x)
	d := new(big.Int)
	for y.Sign() > 0 {
		y.QuoRem(y, base, d)
		sum.Add(sum, d)
	}
	return sum, nil
}
