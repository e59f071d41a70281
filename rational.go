package quotient

import (
	"math"
	"strconv"
	"strings"
)

// Rational is an exact fraction in lowest terms: Denominator is always > 0
// and gcd(|Numerator|, Denominator) == 1 after every operation (spec §3,
// invariant 1). The zero Rational{} is not a valid value — use NewRational
// or one of the arithmetic methods, which always renormalize.
type Rational struct {
	Numerator   int64
	Denominator int64
}

// NewRational builds a normalized Rational, failing with DivisionByZero if
// q is 0. Sign is normalized onto the numerator; both components are
// divided by their gcd.
func NewRational(p, q int64) (Rational, error) {
	if q == 0 {
		return Rational{}, newErr(DivisionByZero, "")
	}
	if q < 0 {
		if p == math.MinInt64 || q == math.MinInt64 {
			return Rational{}, newErr(NumericOverflow, "negation of %d/%d", p, q)
		}
		p, q = -p, -q
	}
	g := gcd(abs64(p), q)
	if g != 0 {
		p /= g
		q /= g
	} else {
		q = 1
	}
	return Rational{Numerator: p, Denominator: q}, nil
}

// IntRational builds the Rational n/1.
func IntRational(n int64) Rational {
	return Rational{Numerator: n, Denominator: 1}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// mulOverflows reports whether a*b overflows an int64.
func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	p := a * b
	return p/b != a
}

func checkedMul(a, b int64) (int64, error) {
	if mulOverflows(a, b) {
		return 0, newErr(NumericOverflow, "%d * %d", a, b)
	}
	return a * b, nil
}

func checkedAdd(a, b int64) (int64, error) {
	s := a + b
	if (s-b != a) || ((a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s > 0)) {
		return 0, newErr(NumericOverflow, "%d + %d", a, b)
	}
	return s, nil
}

// Add returns r + other.
func (r Rational) Add(other Rational) (Rational, error) {
	n1, err := checkedMul(r.Numerator, other.Denominator)
	if err != nil {
		return Rational{}, err
	}
	n2, err := checkedMul(other.Numerator, r.Denominator)
	if err != nil {
		return Rational{}, err
	}
	num, err := checkedAdd(n1, n2)
	if err != nil {
		return Rational{}, err
	}
	den, err := checkedMul(r.Denominator, other.Denominator)
	if err != nil {
		return Rational{}, err
	}
	return NewRational(num, den)
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) (Rational, error) {
	neg := other
	neg.Numerator = -neg.Numerator
	return r.Add(neg)
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) (Rational, error) {
	num, err := checkedMul(r.Numerator, other.Numerator)
	if err != nil {
		return Rational{}, err
	}
	den, err := checkedMul(r.Denominator, other.Denominator)
	if err != nil {
		return Rational{}, err
	}
	return NewRational(num, den)
}

// Div returns r / other, failing DivisionByZero if other's numerator is 0.
func (r Rational) Div(other Rational) (Rational, error) {
	if other.Numerator == 0 {
		return Rational{}, newErr(DivisionByZero, "")
	}
	num, err := checkedMul(r.Numerator, other.Denominator)
	if err != nil {
		return Rational{}, err
	}
	den, err := checkedMul(r.Denominator, other.Numerator)
	if err != nil {
		return Rational{}, err
	}
	return NewRational(num, den)
}

// cross returns the sign of r - other, computed by cross-multiplication
// (ad - bc) so it works without an intermediate common denominator.
func (r Rational) cross(other Rational) (int, error) {
	a, err := checkedMul(r.Numerator, other.Denominator)
	if err != nil {
		return 0, err
	}
	b, err := checkedMul(other.Numerator, r.Denominator)
	if err != nil {
		return 0, err
	}
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports a/b == c/d via cross-multiplication (spec §4.1).
func (r Rational) Equal(other Rational) bool {
	c, err := r.cross(other)
	return err == nil && c == 0
}

// Less reports r < other.
func (r Rational) Less(other Rational) (bool, error) {
	c, err := r.cross(other)
	return c < 0, err
}

// LessEqual reports r <= other.
func (r Rational) LessEqual(other Rational) (bool, error) {
	c, err := r.cross(other)
	return c <= 0, err
}

// Greater reports r > other.
func (r Rational) Greater(other Rational) (bool, error) {
	c, err := r.cross(other)
	return c > 0, err
}

// GreaterEqual reports r >= other.
func (r Rational) GreaterEqual(other Rational) (bool, error) {
	c, err := r.cross(other)
	return c >= 0, err
}

// IsZero reports whether r is exactly 0.
func (r Rational) IsZero() bool { return r.Numerator == 0 }

// String renders the Rational as "n" when the denominator is 1, else
// "n/d" (spec §3).
func (r Rational) String() string {
	if r.Denominator == 1 {
		return strconv.FormatInt(r.Numerator, 10)
	}
	return strconv.FormatInt(r.Numerator, 10) + "/" + strconv.FormatInt(r.Denominator, 10)
}

// ParseRational parses an integer literal ("-12") or a fraction literal
// ("3/4", "-3/4") per spec §4.1. It does not accept whitespace.
func ParseRational(token string) (Rational, bool, error) {
	if token == "" {
		return Rational{}, false, nil
	}
	neg := false
	rest := token
	if rest[0] == '-' || rest[0] == '+' {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	if rest == "" {
		return Rational{}, false, nil
	}

	intPart, fracPart, isFrac := strings.Cut(rest, "/")
	if !isAllDigits(intPart) || intPart == "" {
		return Rational{}, false, nil
	}
	if isFrac && (!isAllDigits(fracPart) || fracPart == "") {
		return Rational{}, false, nil
	}

	num, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Rational{}, true, newErr(NumericOverflow, "%q", token)
	}
	den := int64(1)
	if isFrac {
		den, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return Rational{}, true, newErr(NumericOverflow, "%q", token)
		}
	}
	if neg {
		num = -num
	}
	r, err := NewRational(num, den)
	return r, true, err
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
