// Package tuning computes frequency ratios for generated tuning systems and
// compares them against reference series. All functions are pure; no I/O.
package tuning

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// conversion factor from natural log to cents (Ellis scale):
// 1 octave = 1200 cents, so a factor of 1200 / ln(2)
const ellisFactor = 1200 / math.Ln2

// Value represents an interval as a frequency ratio, kept in exact rational
// form until an irrational operation (root, log) forces conversion to float.
// Den == 0 means the float form is authoritative. Fraction records that the
// value was written as an explicit fraction literal: interval decoding treats
// the spelling as significant ("3/2" is a ratio, "200" is cents), and
// reduction to an integer must not erase it ("2/1" stays a ratio).
type Value struct {
	Num, Den int64
	Float    float64
	Fraction bool
}

// return a new rational value, sign-normalized and reduced
func Rational(num, den int64) Value {
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(num, den); g > 1 {
		num, den = num/g, den/g
	}
	return Value{Num: num, Den: den}
}

// return a new float value
func Float(f float64) Value {
	return Value{Float: f}
}

// Octave is the default reduction interval.
var Octave = Rational(2, 1)

func (v Value) IsRational() bool {
	return v.Den != 0
}

// IsZero reports whether v is the zero value (no interval at all).
func (v Value) IsZero() bool {
	return v.Den == 0 && v.Float == 0
}

// return the floating-point form of the value
func (v Value) Float64() float64 {
	if v.Den != 0 {
		return float64(v.Num) / float64(v.Den)
	}
	return v.Float
}

// return the product of this and another value, exact when both are rational
func (v Value) Mul(other Value) Value {
	if v.Den != 0 && other.Den != 0 {
		return Rational(v.Num*other.Num, v.Den*other.Den)
	}
	return Float(v.Float64() * other.Float64())
}

// return the quotient of this and another value, exact when both are rational
func (v Value) Div(other Value) Value {
	if v.Den != 0 && other.Den != 0 && other.Num != 0 {
		return Rational(v.Num*other.Den, v.Den*other.Num)
	}
	return Float(v.Float64() / other.Float64())
}

// return the value raised to an integer exponent, exact for rationals until
// the numerator or denominator would overflow int64, float from then on
func (v Value) Pow(n int) Value {
	if v.Den != 0 {
		num, den := v.Num, v.Den
		e := n
		if e < 0 {
			num, den, e = den, num, -e
		}
		finalNum, finalDen := int64(1), int64(1)
		for i := 0; i < e; i++ {
			var ok bool
			if finalNum, ok = mulInt64(finalNum, num); !ok {
				return Float(math.Pow(v.Float64(), float64(n)))
			}
			if finalDen, ok = mulInt64(finalDen, den); !ok {
				return Float(math.Pow(v.Float64(), float64(n)))
			}
		}
		return Rational(finalNum, finalDen)
	}
	return Float(math.Pow(v.Float, float64(n)))
}

// multiply with overflow detection
func mulInt64(a, b int64) (int64, bool) {
	p := a * b
	if a != 0 && (p/a != b || (a == -1 && b == math.MinInt64)) {
		return 0, false
	}
	return p, true
}

// return the size of the interval in cents, rounded to the nearest integer
func (v Value) Cents() int {
	return int(math.Round(math.Log(v.Float64()) * ellisFactor))
}

// return the ratio corresponding to an interval in cents
func ratioFromCents(cents float64) float64 {
	return math.Exp(cents / ellisFactor)
}

// return a parseable string representation of the value
func (v Value) String() string {
	if v.Den != 0 {
		if v.Den == 1 {
			return strconv.FormatInt(v.Num, 10)
		}
		return fmt.Sprintf("%d/%d", v.Num, v.Den)
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

var (
	fracRegexp  = regexp.MustCompile(`^(-?\d+)/(\d+)$`)
	centsRegexp = regexp.MustCompile(`^(-?[0-9.]+)c$`)
)

// ParseValue converts an interval literal into a Value. Accepted forms are
// integers ("2"), fractions ("3/2"), floats ("1.5"), and cents-suffixed
// literals ("700c", "701.955c"; converted to a float ratio).
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if m := fracRegexp.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseInt(m[1], 10, 64)
		den, _ := strconv.ParseInt(m[2], 10, 64)
		if den == 0 {
			return Value{}, fmt.Errorf("%w: zero denominator in %q", ErrInvalidParameter, s)
		}
		v := Rational(num, den)
		v.Fraction = true
		return v, nil
	}
	if m := centsRegexp.FindStringSubmatch(s); m != nil {
		cents, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad cents literal %q", ErrInvalidParameter, s)
		}
		return Float(ratioFromCents(cents)), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Rational(i, 1), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f), nil
	}
	return Value{}, fmt.Errorf("%w: %q is not an integer, fraction, float or cents literal",
		ErrInvalidParameter, s)
}

// ParseInterval decodes a repetition-interval literal. A bare integer is
// cents; fractions and floats are ratios; a "c"/"cent"/"cents" suffix forces
// cents. The decoded ratio must exceed 1 (cents must be positive).
func ParseInterval(s string) (Value, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, suffix := range []string{"cents", "cent", "c"} {
		if strings.HasSuffix(s, suffix) {
			cents, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, suffix)), 64)
			if err != nil {
				return Value{}, fmt.Errorf("%w: bad cents literal %q", ErrInvalidParameter, s)
			}
			return centsInterval(cents)
		}
	}
	v, err := ParseValue(s)
	if err != nil {
		return Value{}, err
	}
	if v.IsRational() && v.Den == 1 && !v.Fraction {
		return centsInterval(float64(v.Num))
	}
	if v.Float64() <= 1 {
		return Value{}, fmt.Errorf("%w: interval ratio %s must be > 1", ErrInvalidParameter, s)
	}
	return v, nil
}

// resolve a cents interval to its float ratio
func centsInterval(cents float64) (Value, error) {
	if cents <= 0 {
		return Value{}, fmt.Errorf("%w: interval %g cents must be > 0", ErrInvalidParameter, cents)
	}
	return Float(ratioFromCents(cents)), nil
}

// greatest common divisor of two non-negative integers
func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
