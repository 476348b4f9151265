package calc

import (
	"fmt"
	"math"
	"math/big"
)

// Node is an element of a parsed expression.
type Node interface {
	Eval() (Value, error)
}

// Number is a literal.
type Number struct {
	Value Value
}

// Unary applies "+" or "-" to its operand.
type Unary struct {
	Op      string
	Operand Node
}

// Binary applies one of + - * / // % ** to two operands.
type Binary struct {
	Op          string
	Left, Right Node
}

func (n Number) Eval() (Value, error) { return n.Value, nil }

func (n Unary) Eval() (Value, error) {
	v, err := n.Operand.Eval()
	if err != nil {
		return Value{}, err
	}
	if n.Op == "+" {
		return v, nil
	}
	if v.isFloat {
		return floatValue(-v.f), nil
	}
	return Value{i: new(big.Int).Neg(v.i)}, nil
}

func (n Binary) Eval() (Value, error) {
	l, err := n.Left.Eval()
	if err != nil {
		return Value{}, err
	}
	r, err := n.Right.Eval()
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case "/":
		return trueDiv(l, r)
	case "**":
		return pow(l, r)
	}
	if !l.isFloat && !r.isFloat {
		return intOp(n.Op, l.i, r.i)
	}
	a, err := l.Float64()
	if err != nil {
		return Value{}, err
	}
	b, err := r.Float64()
	if err != nil {
		return Value{}, err
	}
	return floatOp(n.Op, a, b)
}

func intOp(op string, a, b *big.Int) (Value, error) {
	switch op {
	case "+":
		return checkInt(new(big.Int).Add(a, b))
	case "-":
		return checkInt(new(big.Int).Sub(a, b))
	case "*":
		if a.BitLen()+b.BitLen() > maxIntBits+1 {
			return Value{}, ErrOverflow
		}
		return checkInt(new(big.Int).Mul(a, b))
	case "//", "%":
		if b.Sign() == 0 {
			return Value{}, ErrDivisionByZero
		}
		q, m := floorDivMod(a, b)
		if op == "//" {
			return checkInt(q)
		}
		return checkInt(m)
	}
	return Value{}, fmt.Errorf("%w: unknown operator %q", ErrSyntax, op)
}

// floorDivMod rounds the quotient toward negative infinity so the remainder
// takes the sign of the divisor.
func floorDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	q, m := new(big.Int).QuoRem(a, b, new(big.Int))
	if m.Sign() != 0 && m.Sign() != b.Sign() {
		q.Sub(q, big.NewInt(1))
		m.Add(m, b)
	}
	return q, m
}

func floatOp(op string, a, b float64) (Value, error) {
	switch op {
	case "+":
		return checkFloat(a + b)
	case "-":
		return checkFloat(a - b)
	case "*":
		return checkFloat(a * b)
	case "//", "%":
		if b == 0 {
			return Value{}, ErrDivisionByZero
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		if op == "%" {
			return checkFloat(m)
		}
		return checkFloat(math.Round((a - m) / b))
	}
	return Value{}, fmt.Errorf("%w: unknown operator %q", ErrSyntax, op)
}

func trueDiv(l, r Value) (Value, error) {
	if !l.isFloat && !r.isFloat {
		if r.i.Sign() == 0 {
			return Value{}, ErrDivisionByZero
		}
		f, _ := new(big.Rat).SetFrac(l.i, r.i).Float64()
		return checkFloat(f)
	}
	a, err := l.Float64()
	if err != nil {
		return Value{}, err
	}
	b, err := r.Float64()
	if err != nil {
		return Value{}, err
	}
	if b == 0 {
		return Value{}, ErrDivisionByZero
	}
	return checkFloat(a / b)
}

func pow(l, r Value) (Value, error) {
	if !l.isFloat && !r.isFloat && r.i.Sign() >= 0 {
		return intPow(l.i, r.i)
	}
	a, err := l.Float64()
	if err != nil {
		return Value{}, err
	}
	b, err := r.Float64()
	if err != nil {
		return Value{}, err
	}
	if a == 0 && b < 0 {
		return Value{}, ErrDivisionByZero
	}
	if a < 0 && b != math.Trunc(b) {
		return Value{}, ErrDomain
	}
	return checkFloat(math.Pow(a, b))
}

func intPow(base, exp *big.Int) (Value, error) {
	// 0, 1 and -1 stay small for any exponent.
	if base.BitLen() <= 1 {
		return checkInt(new(big.Int).Exp(base, exp, nil))
	}
	if !exp.IsInt64() || int64(base.BitLen()-1)*exp.Int64() > maxIntBits {
		return Value{}, ErrOverflow
	}
	return checkInt(new(big.Int).Exp(base, exp, nil))
}

// Evaluate parses and evaluates src, returning the printed result.
func Evaluate(src string) (string, error) {
	n, err := Parse(src)
	if err != nil {
		return "", err
	}
	v, err := n.Eval()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
