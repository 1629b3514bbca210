package tuning

import (
	"math"

	"github.com/samber/lo"
)

const (
	// references within this distance of a custom value are flagged near
	proximityHz = 17.0
	// harmonic series ceiling
	maxHarmonicHz = 10000.0
	// subharmonic series floor
	minSubharmonicHz = 16.0
)

// AlignMode selects how the 12-TET reference column tracks the custom series.
type AlignMode int

const (
	// AlignSame advances one semitone per row from the comparison fundamental.
	AlignSame AlignMode = iota
	// AlignNearest picks the equal-tempered grade closest to each custom value.
	AlignNearest
)

// RefValue is one reference-series cell of a comparison row. Valid is false
// when the series ran out before this row. Delta is signed (custom minus
// reference); display formatting belongs to the boundary layer.
type RefValue struct {
	Hz    float64
	Delta float64
	Near  bool
	Valid bool
}

// ComparisonRow aligns one custom degree with the three reference series.
type ComparisonRow struct {
	Step        int
	Key         int
	Ratio       float64
	CustomHz    float64
	Harmonic    RefValue
	Subharmonic RefValue
	TET         RefValue
	TETNote     string
}

// Compare builds one row per degree, aligning the custom series (ascending
// Hz) against the harmonic series on compareFundHz, the subharmonic series
// on subharmFundHz, and 12-TET anchored at compareFundHz. diapasonHz sets
// A4 for the TET note labels.
func Compare(degs []Degree, compareFundHz, subharmFundHz float64, mode AlignMode, diapasonHz float64) []ComparisonRow {
	customs := lo.Map(degs, func(d Degree, _ int) float64 { return d.Hz })
	harm := alignAscending(harmonicSeries(compareFundHz), customs)
	sub := alignAscending(subharmonicSeries(subharmFundHz), customs)

	rows := make([]ComparisonRow, len(degs))
	for i, d := range degs {
		tetHz := tetGrade(compareFundHz, i, d.Hz, mode)
		rows[i] = ComparisonRow{
			Step:        d.Step,
			Key:         d.Key,
			Ratio:       d.Ratio,
			CustomHz:    d.Hz,
			Harmonic:    harm[i],
			Subharmonic: sub[i],
			TET:         refValue(tetHz, d.Hz),
			TETNote:     NoteName(tetHz, diapasonHz),
		}
	}
	return rows
}

// n*fund for n = 1, 2, 3... up to the 10 kHz ceiling
func harmonicSeries(fund float64) []float64 {
	var vals []float64
	if fund <= 0 {
		return vals
	}
	for n := 1; ; n++ {
		v := fund * float64(n)
		if v > maxHarmonicHz {
			break
		}
		vals = append(vals, v)
	}
	return vals
}

// fund/n for n = 1, 2, 3... down to the 16 Hz floor, ascending
func subharmonicSeries(fund float64) []float64 {
	var vals []float64
	if fund <= 0 {
		return vals
	}
	for n := 1; ; n++ {
		v := fund / float64(n)
		if v < minSubharmonicHz {
			break
		}
		vals = append(vals, v)
	}
	lo.Reverse(vals)
	return vals
}

// walk two ascending lists in lock-step: for each custom value, advance the
// reference pointer while the next reference is strictly closer, then
// consume the current reference. Each reference pairs with at most one
// custom value and the pointer never moves backwards.
func alignAscending(refs, customs []float64) []RefValue {
	out := make([]RefValue, len(customs))
	p := 0
	for i, c := range customs {
		if p >= len(refs) {
			continue
		}
		for p+1 < len(refs) && math.Abs(refs[p+1]-c) < math.Abs(refs[p]-c) {
			p++
		}
		out[i] = refValue(refs[p], c)
		p++
	}
	return out
}

// the equal-tempered grade for a row: the step-indexed semitone in same
// mode, the semitone closest to the custom value in nearest mode
func tetGrade(fund float64, step int, customHz float64, mode AlignMode) float64 {
	n := float64(step)
	if mode == AlignNearest && customHz > 0 && fund > 0 {
		n = nearestSemitone(customHz, fund)
	}
	return fund * math.Pow(2, n/12)
}

// semitone offset of hz from fund, rounded half away from zero (the
// documented tie-break for values exactly between two semitones)
func nearestSemitone(hz, fund float64) float64 {
	return math.Round(12 * math.Log2(hz/fund))
}

// build a reference cell with signed delta and proximity flag
func refValue(refHz, customHz float64) RefValue {
	delta := customHz - refHz
	return RefValue{
		Hz:    refHz,
		Delta: delta,
		Near:  math.Abs(delta) < proximityHz,
		Valid: true,
	}
}
