package formula

import (
	"math/big"
	"strconv"
)

// snapTolerance is how close a non-integer result must be to an integer to
// be snapped to it by Snap.
var snapTolerance = big.NewRat(1, 1_000_000_000)

// Value is the result of evaluating a formula. It is exact; a value with a
// non-unit denominator is presented as an approximate float.
type Value struct {
	rat *big.Rat
}

// IntValue wraps an integer as a Value.
func IntValue(i *big.Int) Value {
	return Value{rat: new(big.Rat).SetInt(i)}
}

// IsInt reports whether the value is an integer.
func (v Value) IsInt() bool {
	return v.rat != nil && v.rat.IsInt()
}

// Int returns the value as an integer, or nil if it is not one.
func (v Value) Int() *big.Int {
	if !v.IsInt() {
		return nil
	}
	return new(big.Int).Set(v.rat.Num())
}

// Rat returns a copy of the exact value.
func (v Value) Rat() *big.Rat {
	if v.rat == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(v.rat)
}

// Float64 returns the nearest float64.
func (v Value) Float64() float64 {
	if v.rat == nil {
		return 0
	}
	f, _ := v.rat.Float64()
	return f
}

// Equal reports whether the value is exactly the integer i.
func (v Value) Equal(i *big.Int) bool {
	return v.IsInt() && v.rat.Num().Cmp(i) == 0
}

// Snap collapses the value to an integer. Values within 1e-9 of an integer
// snap to it (halves round away from zero); anything else is truncated
// toward zero.
func (v Value) Snap() *big.Int {
	if v.rat == nil {
		return new(big.Int)
	}
	if v.rat.IsInt() {
		return new(big.Int).Set(v.rat.Num())
	}
	nearest := roundHalfAway(v.rat)
	diff := new(big.Rat).Sub(v.rat, new(big.Rat).SetInt(nearest))
	if diff.Abs(diff).Cmp(snapTolerance) < 0 {
		return nearest
	}
	return new(big.Int).Quo(v.rat.Num(), v.rat.Denom())
}

func roundHalfAway(r *big.Rat) *big.Int {
	// trunc(r + sign(r)/2)
	half := big.NewRat(1, 2)
	if r.Sign() < 0 {
		half.Neg(half)
	}
	s := new(big.Rat).Add(r, half)
	return new(big.Int).Quo(s.Num(), s.Denom())
}

// String renders integers exactly and other values as floats.
func (v Value) String() string {
	if v.rat == nil {
		return "0"
	}
	if v.rat.IsInt() {
		return v.rat.Num().String()
	}
	return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
}
