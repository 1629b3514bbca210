package tuning

import (
	"fmt"
	"math"
	"sort"
)

// tolerance below which two ratios are considered identical
const ratioEps = 1e-9

// RatioSet is a deduplicated sequence of frequency ratios, sorted ascending.
type RatioSet []float64

// Reduce folds a value into the interval window [1, interval), keeping
// rational arithmetic when both values are rational.
func Reduce(v, interval Value) Value {
	if v.IsRational() && interval.IsRational() {
		for v.Float64() >= interval.Float64() {
			v = v.Div(interval)
		}
		for v.Float64() < 1 {
			v = v.Mul(interval)
		}
		return v
	}
	f, i := v.Float64(), interval.Float64()
	for f >= i {
		f /= i
	}
	for f < 1 {
		f *= i
	}
	return Float(f)
}

// Normalize turns candidate values into a RatioSet: optional reduction into
// [1, interval), first-seen deduplication with 1e-9 tolerance, ascending
// sort. Ties in the dedup never affect ordering since the result is sorted
// before any downstream use.
func Normalize(vals []Value, interval Value, reduce bool) (RatioSet, error) {
	if reduce && interval.Float64() <= 1 {
		return nil, fmt.Errorf("%w: reduction interval %s must be > 1", ErrInvalidParameter, interval)
	}
	set := make(RatioSet, 0, len(vals))
	for _, v := range vals {
		if v.Float64() <= 0 {
			return nil, fmt.Errorf("%w: ratio %s must be > 0", ErrInvalidParameter, v)
		}
		if reduce {
			v = Reduce(v, interval)
		}
		f := v.Float64()
		duplicate := false
		for _, s := range set {
			if math.Abs(f-s) <= ratioEps {
				duplicate = true
				break
			}
		}
		if !duplicate {
			set = append(set, f)
		}
	}
	sort.Float64s(set)
	return set, nil
}

// ExpandSpan repeats a ratio set over span copies of the interval: each base
// ratio is multiplied by interval^0 .. interval^(span-1) and the result is
// re-sorted ascending. Span 1 is the identity.
func ExpandSpan(set RatioSet, interval float64, span int) (RatioSet, error) {
	if span < 1 {
		return nil, fmt.Errorf("%w: span %d must be >= 1", ErrInvalidParameter, span)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: span interval %g must be > 0", ErrInvalidParameter, interval)
	}
	if span == 1 {
		out := make(RatioSet, len(set))
		copy(out, set)
		return out, nil
	}
	out := make(RatioSet, 0, span*len(set))
	factor := 1.0
	for k := 0; k < span; k++ {
		for _, r := range set {
			out = append(out, r*factor)
		}
		factor *= interval
	}
	sort.Float64s(out)
	return out, nil
}
