package tuning

import (
	"fmt"
	"strconv"
	"strings"
)

// SystemKind tags the generator variant of a System.
type SystemKind int

const (
	EqualTemperament SystemKind = iota
	Geometric
	Natural
	Danielou
)

// return the variant name
func (k SystemKind) String() string {
	switch k {
	case EqualTemperament:
		return "equal temperament"
	case Geometric:
		return "geometric"
	case Natural:
		return "natural"
	case Danielou:
		return "danielou"
	}
	return "unknown"
}

// System is a tagged variant over the four generator families. Each variant
// carries only its own parameters; the caller supplies exactly one resolved
// System and the selection policy between competing variants stays outside
// the core.
type System struct {
	Kind SystemKind

	// equal temperament: division index and interval size. An integer or
	// float interval is raw cents; a proper fraction is a ratio converted
	// to cents on the Ellis scale.
	Index    int
	Interval Value

	// geometric: generator ratio and step count
	Generator Value
	Steps     int

	// natural: exponent bounds for (3/2)^a * (5/4)^b
	AMax, BMax int

	// danielou: full 53-grade grid, explicit (a,b,c) triples, or the
	// default subset when neither is set
	Grid    bool
	Triples [][3]int
}

// return an equal temperament system of index divisions of interval
func NewEqualTemperament(index int, interval Value) System {
	return System{Kind: EqualTemperament, Index: index, Interval: interval}
}

// return a geometric system of steps powers of generator
func NewGeometric(generator Value, steps int) System {
	return System{Kind: Geometric, Generator: generator, Steps: steps}
}

// return a natural (4:5:6) system with exponents a in [-aMax, aMax] and
// b in [-bMax, bMax]
func NewNatural(aMax, bMax int) System {
	return System{Kind: Natural, AMax: aMax, BMax: bMax}
}

// return the default Danielou subset (tonic, fifths axis, three harmonic
// minor thirds, three harmonic major sixths)
func NewDanielou() System {
	return System{Kind: Danielou}
}

// return the full Danielou grid (53 grades)
func NewDanielouGrid() System {
	return System{Kind: Danielou, Grid: true}
}

// return a Danielou system from explicit (a,b,c) exponent triples
func NewDanielouTriples(triples ...[3]int) System {
	return System{Kind: Danielou, Triples: triples}
}

// IntervalFactor returns the repetition interval of the system as a float
// ratio: the ET interval for equal temperaments, the octave otherwise.
func (s System) IntervalFactor() float64 {
	if s.Kind == EqualTemperament {
		cents, err := s.intervalCents()
		if err != nil {
			return 0
		}
		return ratioFromCents(cents)
	}
	return 2.0
}

// Trivial reports whether the system degenerates to a bare unison
// (a geometric progression on generator 1).
func (s System) Trivial() bool {
	return s.Kind == Geometric && s.Generator.Float64() == 1
}

// resolve the ET interval parameter to cents
func (s System) intervalCents() (float64, error) {
	v := s.Interval
	switch {
	case v.IsZero():
		return 0, fmt.Errorf("%w: equal temperament interval missing", ErrInvalidParameter)
	case v.Fraction || v.Den > 1:
		// rational interval, convert on the Ellis scale. The Fraction flag
		// keeps "2/1" a ratio even though it reduces to an integer.
		return float64(v.Cents()), nil
	default:
		// integer or float interval is already cents
		return v.Float64(), nil
	}
}

// ParseDanielouTriple converts an "a,b,c" literal into an exponent triple.
// Separators ":" and ";" and outer brackets are tolerated; a single integer
// "a" is shorthand for (a, 0, 1).
func ParseDanielouTriple(s string) ([3]int, error) {
	s = strings.TrimSpace(s)
	for _, pair := range [][2]string{{"[", "]"}, {"(", ")"}, {"{", "}"}} {
		if strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	s = strings.NewReplacer(":", ",", ";", ",").Replace(s)
	var parts []string
	for _, p := range strings.Split(strings.Trim(s, ","), ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 1 {
		a, err := strconv.Atoi(parts[0])
		if err != nil {
			return [3]int{}, fmt.Errorf("%w: bad danielou triple %q", ErrInvalidParameter, s)
		}
		return [3]int{a, 0, 1}, nil
	}
	if len(parts) != 3 {
		return [3]int{}, fmt.Errorf("%w: danielou triple %q needs exactly 3 exponents", ErrInvalidParameter, s)
	}
	var t [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return [3]int{}, fmt.Errorf("%w: danielou exponent %q is not an integer", ErrInvalidParameter, p)
		}
		t[i] = n
	}
	return t, nil
}
