package calc

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

var (
	// ErrSyntax reports input outside the arithmetic grammar or its size limits.
	ErrSyntax = errors.New("calc: syntax error")
	// ErrDivisionByZero reports a zero divisor, including 0 to a negative power.
	ErrDivisionByZero = errors.New("calc: division by zero")
	// ErrOverflow reports a result too large for an int or a float64.
	ErrOverflow = errors.New("calc: result out of range")
	// ErrDomain reports a complex result, such as a negative base to a fractional power.
	ErrDomain = errors.New("calc: math domain error")
)

const (
	maxExprLen = 1024
	maxDepth   = 64
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '*' || c == '/':
			if i+1 < len(src) && src[i+1] == c {
				toks = append(toks, token{tokOp, src[i : i+2], i})
				i += 2
				continue
			}
			toks = append(toks, token{tokOp, string(c), i})
			i++
		case c == '+' || c == '-' || c == '%':
			toks = append(toks, token{tokOp, string(c), i})
			i++
		case isDigit(c) || c == '.':
			j := scanNumber(src, i)
			if j == i {
				return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, i)
			}
			toks = append(toks, token{tokNumber, src[i:j], i})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, i)
		}
	}
	return append(toks, token{tokEOF, "", len(src)}), nil
}

// scanNumber returns the end of the numeric literal starting at i, or i when
// there is none (a lone ".").
func scanNumber(src string, i int) int {
	j := i
	for j < len(src) && isDigit(src[j]) {
		j++
	}
	intDigits := j - i
	fracDigits := 0
	if j < len(src) && src[j] == '.' {
		j++
		k := j
		for j < len(src) && isDigit(src[j]) {
			j++
		}
		fracDigits = j - k
	}
	if intDigits == 0 && fracDigits == 0 {
		return i
	}
	if j < len(src) && (src[j] == 'e' || src[j] == 'E') {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		start := k
		for k < len(src) && isDigit(src[k]) {
			k++
		}
		if k > start {
			j = k
		}
	}
	return j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

type parser struct {
	toks  []token
	pos   int
	depth int
}

// Parse turns src into an expression tree.
func Parse(src string) (Node, error) {
	if len(src) > maxExprLen {
		return nil, fmt.Errorf("%w: expression longer than %d bytes", ErrSyntax, maxExprLen)
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops ...string) bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if t.text == op {
			return true
		}
	}
	return false
}

// expr := term (("+" | "-") term)*
func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.next().text
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// term := factor (("*" | "/" | "//" | "%") factor)*
func (p *parser) term() (Node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/", "//", "%") {
		op := p.next().text
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// factor := ("+" | "-") factor | power
func (p *parser) factor() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrSyntax, maxDepth)
	}
	if p.isOp("+", "-") {
		op := p.next().text
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, Operand: operand}, nil
	}
	return p.power()
}

// power := atom ["**" factor]
func (p *parser) power() (Node, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.isOp("**") {
		p.next()
		exp, err := p.factor()
		if err != nil {
			return nil, err
		}
		return Binary{Op: "**", Left: base, Right: exp}, nil
	}
	return base, nil
}

// atom := number | "(" expr ")"
func (p *parser) atom() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return parseNumber(t)
	case tokLParen:
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxDepth {
			return nil, fmt.Errorf("%w: nesting deeper than %d", ErrSyntax, maxDepth)
		}
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing ')' at %d", ErrSyntax, closing.pos)
		}
		return n, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
}

func parseNumber(t token) (Node, error) {
	for i := 0; i < len(t.text); i++ {
		if c := t.text[i]; c == '.' || c == 'e' || c == 'E' {
			f, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrOverflow, t.text)
			}
			return Number{Value: floatValue(f)}, nil
		}
	}
	n, ok := new(big.Int).SetString(t.text, 10)
	if !ok {
		return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, t.text)
	}
	v, err := checkInt(n)
	if err != nil {
		return nil, err
	}
	return Number{Value: v}, nil
}
