package compute

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags which representation a Number holds.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
)

func (k Kind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// Number is an integer or floating-point operand. The zero value is Int(0).
//
// Integer arithmetic stays integer (wrapping on overflow like int64); any
// float operand promotes the result to float. Division and averaging always
// produce floats.
type Number struct {
	kind Kind
	i    int64
	f    float64
}

// Int returns an integer Number.
func Int(v int64) Number {
	return Number{kind: KindInt, i: v}
}

// Float returns a floating-point Number.
func Float(v float64) Number {
	return Number{kind: KindFloat, f: v}
}

// Ints is a convenience for building integer operand lists.
func Ints(vs ...int64) []Number {
	out := make([]Number, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}
	return out
}

func (n Number) Kind() Kind { return n.kind }

func (n Number) IsInt() bool { return n.kind == KindInt }

// Int64 returns the integer value, truncating floats toward zero.
func (n Number) Int64() int64 {
	if n.kind == KindFloat {
		return int64(n.f)
	}
	return n.i
}

func (n Number) Float64() float64 {
	if n.kind == KindFloat {
		return n.f
	}
	return float64(n.i)
}

// IsZero reports exact equality with zero. -0.0 is zero.
func (n Number) IsZero() bool {
	if n.kind == KindFloat {
		return n.f == 0
	}
	return n.i == 0
}

func (n Number) IsFinite() bool {
	if n.kind == KindInt {
		return true
	}
	return !math.IsNaN(n.f) && !math.IsInf(n.f, 0)
}

func (n Number) String() string {
	if n.kind == KindInt {
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Add returns a + b.
func Add(a, b Number) Number {
	if a.kind == KindInt && b.kind == KindInt {
		return Int(a.i + b.i)
	}
	return Float(a.Float64() + b.Float64())
}

// Sub returns a - b.
func Sub(a, b Number) Number {
	if a.kind == KindInt && b.kind == KindInt {
		return Int(a.i - b.i)
	}
	return Float(a.Float64() - b.Float64())
}

// Mul returns a * b.
func Mul(a, b Number) Number {
	if a.kind == KindInt && b.kind == KindInt {
		return Int(a.i * b.i)
	}
	return Float(a.Float64() * b.Float64())
}

// Pow returns base raised to exp. Integer base and non-negative integer
// exponent stay integer; everything else goes through math.Pow.
func Pow(base, exp Number) Number {
	if base.kind == KindInt && exp.kind == KindInt && exp.i >= 0 {
		return Int(ipow(base.i, exp.i))
	}
	return Float(math.Pow(base.Float64(), exp.Float64()))
}

func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// Quo returns a / b as a float. It does not guard against a zero divisor.
func Quo(a, b Number) Number {
	return Float(a.Float64() / b.Float64())
}

// Compare returns -1, 0 or +1. Two integers compare exactly; mixed or float
// operands compare as float64.
func Compare(a, b Number) int {
	if a.kind == KindInt && b.kind == KindInt {
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		}
		return 0
	}
	af, bf := a.Float64(), b.Float64()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	}
	return 0
}

// MarshalJSON encodes integers as integer literals and floats with a
// fractional part. Non-finite floats have no JSON literal and are encoded as
// the strings "NaN", "+Inf" and "-Inf".
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.IsFinite() {
		return []byte(strconv.Quote(formatFloat(n.f))), nil
	}
	return []byte(n.String()), nil
}

// UnmarshalJSON accepts JSON numbers only.
func (n *Number) UnmarshalJSON(data []byte) error {
	lit := string(bytes.TrimSpace(data))
	parsed, err := ParseNumber(lit)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// ParseNumber parses a numeric literal. Literals without a fraction or
// exponent that fit in int64 become integers. Literals out of float64 range
// are rejected.
func ParseNumber(lit string) (Number, error) {
	if lit == "" || lit == "null" {
		return Number{}, fmt.Errorf("%w: empty literal", ErrInvalidNumber)
	}
	if !strings.ContainsAny(lit, ".eE") {
		if v, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(v), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Number{}, fmt.Errorf("%w %q: %w", ErrInvalidNumber, lit, err)
	}
	return Float(f), nil
}
