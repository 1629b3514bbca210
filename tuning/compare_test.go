package tuning

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarmonicSeriesCeiling(t *testing.T) {
	vals := harmonicSeries(440)
	require.NotEmpty(t, vals)
	assert.Equal(t, 440.0, vals[0])
	assert.Equal(t, 880.0, vals[1])
	assert.LessOrEqual(t, vals[len(vals)-1], maxHarmonicHz)
	assert.Len(t, vals, 22) // 23*440 > 10 kHz
}

func TestSubharmonicSeriesFloor(t *testing.T) {
	vals := subharmonicSeries(880)
	require.NotEmpty(t, vals)
	// ascending, generator last, nothing under 16 Hz
	assert.Equal(t, 880.0, vals[len(vals)-1])
	assert.GreaterOrEqual(t, vals[0], minSubharmonicHz)
	for i := 1; i < len(vals); i++ {
		assert.Greater(t, vals[i], vals[i-1])
	}
}

func TestAlignAscendingMonotonic(t *testing.T) {
	refs := []float64{100, 200, 300, 400}
	out := alignAscending(refs, []float64{95, 310, 390})
	require.Len(t, out, 3)
	assert.Equal(t, 100.0, out[0].Hz)
	assert.InDelta(t, -5.0, out[0].Delta, 1e-12)
	assert.Equal(t, 300.0, out[1].Hz)
	assert.Equal(t, 400.0, out[2].Hz)
}

func TestAlignAscendingConsumesOnce(t *testing.T) {
	// both customs are closest to 200, but each reference pairs at most once
	out := alignAscending([]float64{100, 200, 300}, []float64{199, 201})
	assert.Equal(t, 200.0, out[0].Hz)
	assert.Equal(t, 300.0, out[1].Hz)
}

func TestAlignAscendingExhausted(t *testing.T) {
	out := alignAscending([]float64{100}, []float64{90, 500, 900})
	assert.True(t, out[0].Valid)
	assert.False(t, out[1].Valid)
	assert.False(t, out[2].Valid)
}

func TestCompareNearestTET(t *testing.T) {
	degs := []Degree{{Step: 0, Key: 60, Ratio: 466.0 / 440.0, Hz: 466.0}}
	rows := Compare(degs, 440, 440, AlignNearest, 440)
	require.Len(t, rows, 1)
	tet := rows[0].TET
	assert.True(t, tet.Valid)
	assert.InDelta(t, 466.1637615, tet.Hz, 1e-6)
	assert.InDelta(t, -0.1637615, tet.Delta, 1e-6)
	assert.True(t, tet.Near)
	assert.Equal(t, "A#4", rows[0].TETNote)
}

func TestCompareSameTET(t *testing.T) {
	degs := ToDegrees(RatioSet{1.0, 1.25, 1.5}, 60, 440)
	rows := Compare(degs, 440, 440, AlignSame, 440)
	require.Len(t, rows, 3)
	// one semitone per row from the fundamental
	for i, row := range rows {
		assert.InDelta(t, 440*math.Pow(2, float64(i)/12), row.TET.Hz, 1e-9)
	}
	assert.Equal(t, "A4", rows[0].TETNote)
	assert.Equal(t, "A#4", rows[1].TETNote)
}

func TestCompareHarmonicAlignment(t *testing.T) {
	// degrees sitting on exact harmonics of the fundamental
	degs := ToDegrees(RatioSet{1.0, 2.0, 3.0}, 60, 220)
	rows := Compare(degs, 220, 440, AlignSame, 440)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.True(t, row.Harmonic.Valid)
		assert.InDelta(t, 0.0, row.Harmonic.Delta, 1e-9)
		assert.True(t, row.Harmonic.Near)
	}
}

func TestCompareSignedDeltas(t *testing.T) {
	degs := []Degree{{Step: 0, Key: 60, Ratio: 1.0, Hz: 450}}
	rows := Compare(degs, 440, 880, AlignNearest, 440)
	require.Len(t, rows, 1)
	assert.InDelta(t, 10.0, rows[0].Harmonic.Delta, 1e-9)
	assert.True(t, rows[0].Harmonic.Near)
	// subharmonic 880/2 = 440 is the closest
	assert.Equal(t, 440.0, rows[0].Subharmonic.Hz)
	assert.InDelta(t, 10.0, rows[0].Subharmonic.Delta, 1e-9)
}

func TestNearestSemitone(t *testing.T) {
	assert.Equal(t, 0.0, nearestSemitone(440*math.Pow(2, 0.49/12), 440))
	assert.Equal(t, 1.0, nearestSemitone(440*math.Pow(2, 0.51/12), 440))
	assert.Equal(t, 0.0, nearestSemitone(440*math.Pow(2, -0.49/12), 440))
	assert.Equal(t, -1.0, nearestSemitone(440*math.Pow(2, -0.51/12), 440))
	assert.Equal(t, 12.0, nearestSemitone(880, 440))
}
