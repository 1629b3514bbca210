package tuning

import "fmt"

// the structure of the full Danielou grid: for each count of harmonic minor
// thirds a, the number of descending and ascending fifths explored
var danielouSeries = map[int][2]int{
	0:  {5, 5},
	1:  {3, 4},
	-1: {5, 3},
	2:  {4, 4},
	-2: {4, 4},
	3:  {4, 0},
	-3: {0, 4},
}

// danielouGrades is the degree count of the full Danielou grid: the tonic,
// 51 reduced grades, and the closing octave.
const danielouGrades = 53

// Generate produces the ratio set of a tuning system. With reduce set, each
// ratio is folded into [1, interval); interval defaults to the system's own
// repetition interval when zero. The result is deduplicated (1e-9 tolerance)
// and sorted ascending.
func Generate(sys System, reduce bool, interval Value) (RatioSet, error) {
	if interval.IsZero() {
		if sys.Kind == EqualTemperament {
			interval = Float(sys.IntervalFactor())
		} else {
			interval = Octave
		}
	}
	raw, err := rawRatios(sys)
	if err != nil {
		return nil, err
	}
	set, err := Normalize(raw, interval, reduce)
	if err != nil {
		return nil, err
	}
	if sys.Kind == Danielou && sys.Grid && reduce {
		set = finalizeDanielouGrid(set)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s system produced no ratios", ErrDegenerateInput, sys.Kind)
	}
	return set, nil
}

// generate the unreduced candidate ratios of a system
func rawRatios(sys System) ([]Value, error) {
	switch sys.Kind {
	case EqualTemperament:
		return etRatios(sys)
	case Geometric:
		return geometricRatios(sys)
	case Natural:
		return naturalRatios(sys)
	case Danielou:
		return danielouRatios(sys)
	}
	return nil, fmt.Errorf("%w: unknown system kind %d", ErrInvalidParameter, int(sys.Kind))
}

// ratio_k = 2^(k*cents/(index*1200)) for k = 0..index-1, via the interval's
// root ratio. Roots are irrational, so ET ratios are always floats.
func etRatios(sys System) ([]Value, error) {
	if sys.Index <= 0 {
		return nil, fmt.Errorf("%w: et index %d must be > 0", ErrInvalidParameter, sys.Index)
	}
	cents, err := sys.intervalCents()
	if err != nil {
		return nil, err
	}
	if cents <= 0 {
		return nil, fmt.Errorf("%w: et interval %s must be positive cents", ErrInvalidParameter, sys.Interval)
	}
	root := ratioFromCents(cents / float64(sys.Index))
	vals := make([]Value, sys.Index)
	for k := range vals {
		vals[k] = Float(root).Pow(k)
	}
	return vals, nil
}

// ratio_k = generator^k for k = 0..steps-1, exact for rational generators
func geometricRatios(sys System) ([]Value, error) {
	if sys.Steps <= 0 {
		return nil, fmt.Errorf("%w: geometric steps %d must be > 0", ErrInvalidParameter, sys.Steps)
	}
	if sys.Generator.Float64() <= 0 {
		return nil, fmt.Errorf("%w: geometric generator %s must be > 0", ErrInvalidParameter, sys.Generator)
	}
	vals := make([]Value, sys.Steps)
	for k := range vals {
		vals[k] = sys.Generator.Pow(k)
	}
	return vals, nil
}

// ratio = (3/2)^a * (5/4)^b for a in [-aMax, aMax], b in [-bMax, bMax]
func naturalRatios(sys System) ([]Value, error) {
	if sys.AMax < 0 || sys.BMax < 0 {
		return nil, fmt.Errorf("%w: natural bounds (%d, %d) must be >= 0", ErrInvalidParameter, sys.AMax, sys.BMax)
	}
	fifth, majorThird := Rational(3, 2), Rational(5, 4)
	vals := make([]Value, 0, (2*sys.AMax+1)*(2*sys.BMax+1))
	for a := -sys.AMax; a <= sys.AMax; a++ {
		for b := -sys.BMax; b <= sys.BMax; b++ {
			vals = append(vals, fifth.Pow(a).Mul(majorThird.Pow(b)))
		}
	}
	return vals, nil
}

// ratio = (6/5)^a * (3/2)^b * 2^c over the selected Danielou mode
func danielouRatios(sys System) ([]Value, error) {
	minorThird, fifth, octave := Rational(6, 5), Rational(3, 2), Rational(2, 1)
	var vals []Value
	switch {
	case len(sys.Triples) > 0:
		for _, t := range sys.Triples {
			vals = append(vals, minorThird.Pow(t[0]).Mul(fifth.Pow(t[1])).Mul(octave.Pow(t[2])))
		}
	case sys.Grid:
		for a, counts := range danielouSeries {
			for b := -counts[0]; b <= counts[1]; b++ {
				vals = append(vals, minorThird.Pow(a).Mul(fifth.Pow(b)))
			}
		}
	default:
		// tonic, the fifths axis, three successive harmonic minor
		// thirds and three successive harmonic major sixths
		vals = append(vals, Rational(1, 1))
		for b := -5; b <= 5; b++ {
			vals = append(vals, fifth.Pow(b))
		}
		majorSixth := Rational(5, 3)
		for k := 1; k <= 3; k++ {
			vals = append(vals, minorThird.Pow(k), majorSixth.Pow(k))
		}
	}
	return vals, nil
}

// trim a reduced full-grid set to the canonical 53 grades: the tonic, the
// next 51 values, and 2/1 as the closing grade
func finalizeDanielouGrid(set RatioSet) RatioSet {
	out := make(RatioSet, 0, danielouGrades)
	if len(set) == 0 || set[0] > 1+ratioEps {
		out = append(out, 1.0)
	}
	for _, r := range set {
		if len(out) >= danielouGrades-1 {
			break
		}
		out = append(out, r)
	}
	return append(out, 2.0)
}
