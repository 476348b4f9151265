package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxIntBits caps integer results so "**" cannot be used to exhaust memory.
const maxIntBits = 4096

// Value is either an arbitrary-precision integer or a float64.
type Value struct {
	isFloat bool
	i       *big.Int
	f       float64
}

func floatValue(f float64) Value { return Value{isFloat: true, f: f} }

// Float64 converts v to a float64. Integers too large for a float64 report ErrOverflow.
func (v Value) Float64() (float64, error) {
	if v.isFloat {
		return v.f, nil
	}
	f, _ := new(big.Float).SetInt(v.i).Float64()
	if math.IsInf(f, 0) {
		return 0, ErrOverflow
	}
	return f, nil
}

// String renders v the way an interactive interpreter would print it:
// integers in full, floats in shortest round-trip form with a trailing ".0"
// for integral values and exponent notation outside [1e-4, 1e16).
func (v Value) String() string {
	if !v.isFloat {
		return v.i.String()
	}
	f := v.f
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func checkInt(n *big.Int) (Value, error) {
	if n.BitLen() > maxIntBits {
		return Value{}, ErrOverflow
	}
	return Value{i: n}, nil
}

func checkFloat(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, ErrOverflow
	}
	return floatValue(f), nil
}
