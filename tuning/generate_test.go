package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateET12(t *testing.T) {
	set, err := Generate(NewEqualTemperament(12, Rational(1200, 1)), true, Value{})
	require.NoError(t, err)
	require.Len(t, set, 12)
	assert.InDelta(t, 1.0, set[0], 1e-12)
	assert.InDelta(t, 1.887748625, set[11], 1e-9)
}

func TestGenerateETRationalInterval(t *testing.T) {
	// a 3/2 interval converts to 702 cents on the Ellis scale
	set, err := Generate(NewEqualTemperament(2, Rational(3, 2)), true, Value{})
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.InDelta(t, 1.0, set[0], 1e-12)
	assert.InDelta(t, ratioFromCents(351), set[1], 1e-9)
}

func TestGenerateETFractionInterval(t *testing.T) {
	// "2/1" is spelled as a fraction, so it is an octave ratio, not 2 cents
	interval, err := ParseValue("2/1")
	require.NoError(t, err)
	set, err := Generate(NewEqualTemperament(12, interval), true, Value{})
	require.NoError(t, err)
	require.Len(t, set, 12)
	assert.InDelta(t, 1.887748625, set[11], 1e-9)
	assert.InDelta(t, 2.0, NewEqualTemperament(12, interval).IntervalFactor(), 1e-9)
}

func TestGenerateETInvalid(t *testing.T) {
	_, err := Generate(NewEqualTemperament(0, Rational(1200, 1)), true, Value{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Generate(NewEqualTemperament(-3, Rational(1200, 1)), true, Value{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Generate(NewEqualTemperament(12, Rational(-100, 1)), true, Value{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGeneratePythagorean(t *testing.T) {
	set, err := Generate(NewGeometric(Rational(3, 2), 12), true, Value{})
	require.NoError(t, err)
	require.Len(t, set, 12)
	assert.InDelta(t, 1.0, set[0], 1e-12)
	for _, r := range set {
		assert.GreaterOrEqual(t, r, 1.0)
		assert.Less(t, r, 2.0)
	}
	// the 12th power reduces to the Pythagorean comma above the unison
	comma := Reduce(Rational(3, 2).Pow(12), Octave)
	assert.InDelta(t, 1.013643265, comma.Float64(), 1e-9)
}

func TestGenerateGeometricNoReduce(t *testing.T) {
	set, err := Generate(NewGeometric(Rational(3, 2), 5), false, Value{})
	require.NoError(t, err)
	require.Len(t, set, 5)
	assert.InDelta(t, 5.0625, set[4], 1e-12)
}

func TestGenerateGeometricCustomInterval(t *testing.T) {
	// reduction folds into [1, 3) when the repetition interval is a twelfth
	interval, err := ParseInterval("3/1")
	require.NoError(t, err)
	set, err := Generate(NewGeometric(Rational(3, 2), 4), true, interval)
	require.NoError(t, err)
	assert.Equal(t, RatioSet{1, 1.125, 1.5, 2.25}, set)
}

func TestGenerateGeometricTrivial(t *testing.T) {
	sys := NewGeometric(Rational(1, 1), 12)
	assert.True(t, sys.Trivial())
	set, err := Generate(sys, true, Value{})
	require.NoError(t, err)
	assert.Equal(t, RatioSet{1.0}, set)
}

func TestGenerateGeometricInvalid(t *testing.T) {
	_, err := Generate(NewGeometric(Rational(3, 2), 0), true, Value{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Generate(NewGeometric(Rational(-3, 2), 5), true, Value{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGenerateNatural(t *testing.T) {
	set, err := Generate(NewNatural(1, 1), true, Value{})
	require.NoError(t, err)
	assert.Equal(t, RatioSet{
		1, 16.0 / 15, 6.0 / 5, 5.0 / 4, 4.0 / 3, 3.0 / 2, 8.0 / 5, 5.0 / 3, 15.0 / 8,
	}, set)
}

func TestGenerateNaturalWideBounds(t *testing.T) {
	// exponents far beyond exact int64 range: powers continue as floats
	set, err := Generate(NewNatural(40, 0), true, Value{})
	require.NoError(t, err)
	assert.Len(t, set, 81)
	for _, r := range set {
		assert.GreaterOrEqual(t, r, 1.0)
		assert.Less(t, r, 2.0)
	}
}

func TestGenerateNaturalInvalid(t *testing.T) {
	_, err := Generate(NewNatural(-1, 3), true, Value{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGenerateDanielouDefault(t *testing.T) {
	set, err := Generate(NewDanielou(), true, Value{})
	require.NoError(t, err)
	// tonic + 10 distinct fifths + 3 minor thirds + 3 major sixths
	assert.Len(t, set, 17)
	assert.InDelta(t, 1.0, set[0], 1e-12)
	assert.Contains(t, set, 1.2)
	assert.Contains(t, set, 1.5)
}

func TestGenerateDanielouGrid(t *testing.T) {
	set, err := Generate(NewDanielouGrid(), true, Value{})
	require.NoError(t, err)
	require.Len(t, set, 53)
	assert.Equal(t, 1.0, set[0])
	assert.Equal(t, 2.0, set[52])
	for _, r := range set[:52] {
		assert.GreaterOrEqual(t, r, 1.0)
		assert.Less(t, r, 2.0)
	}
}

func TestGenerateDanielouTriples(t *testing.T) {
	// (6/5)^0 * (3/2)^0 * 2^1 reduces to the unison
	set, err := Generate(NewDanielouTriples([3]int{0, 0, 1}), true, Value{})
	require.NoError(t, err)
	assert.Equal(t, RatioSet{1.0}, set)

	// several triples accumulate into one set
	set, err = Generate(NewDanielouTriples([3]int{1, 0, 0}, [3]int{0, 1, 0}), true, Value{})
	require.NoError(t, err)
	assert.Equal(t, RatioSet{1.2, 1.5}, set)
}

func TestParseDanielouTriple(t *testing.T) {
	for s, want := range map[string][3]int{
		"1,2,-1":    {1, 2, -1},
		"1 , 2, -1": {1, 2, -1},
		"1:2:-1":    {1, 2, -1},
		"1;2;-1":    {1, 2, -1},
		"[1,2,-1]":  {1, 2, -1},
		"(0,0,1)":   {0, 0, 1},
		"3":         {3, 0, 1},
	} {
		got, err := ParseDanielouTriple(s)
		assert.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
}

func TestParseDanielouTripleErrors(t *testing.T) {
	for _, s := range []string{"", "1,2", "1,2,3,4", "a,b,c", "1,x,3"} {
		_, err := ParseDanielouTriple(s)
		assert.ErrorIs(t, err, ErrInvalidParameter, s)
	}
}

func TestSystemIntervalFactor(t *testing.T) {
	assert.InDelta(t, 2.0, NewEqualTemperament(12, Rational(1200, 1)).IntervalFactor(), 1e-9)
	assert.InDelta(t, 2.0, NewGeometric(Rational(3, 2), 12).IntervalFactor(), 1e-12)
	assert.InDelta(t, 2.0, NewDanielouGrid().IntervalFactor(), 1e-12)
}
