package tuning

// Degree is one step of a realized tuning: a ratio anchored to a base MIDI
// key and base frequency. Immutable after creation.
type Degree struct {
	Step  int
	Key   int
	Ratio float64
	Hz    float64
}

// midi key range bounds
const (
	minMidiKey = 0
	maxMidiKey = 127
	midiKeys   = 128
)

// ToDegrees realizes a ratio set as degrees anchored at baseKey with
// baseHz as the frequency of ratio 1/1.
func ToDegrees(set RatioSet, baseKey int, baseHz float64) []Degree {
	degs := make([]Degree, len(set))
	for i, r := range set {
		degs[i] = Degree{Step: i, Key: baseKey + i, Ratio: r, Hz: baseHz * r}
	}
	return degs
}

// FitMidiRange ensures a degree sequence fits the MIDI key range [0, 127].
// With truncate set, the base key stays fixed and excess degrees are dropped
// from the high end. Otherwise the base key is shifted down so the whole
// sequence fits; when no shift can fit it (more than 128 degrees), the
// sequence is truncated anyway and the warning flag is set. Pure function:
// the input slice is not modified.
func FitMidiRange(degs []Degree, baseKey int, truncate bool) ([]Degree, int, bool) {
	n := len(degs)
	warning := false
	effKey := baseKey
	if !truncate {
		allowedMax := maxMidiKey - (n - 1)
		if allowedMax < minMidiKey {
			// over 128 degrees: no base key fits, truncate instead
			allowedMax = minMidiKey
			warning = true
			truncate = true
		}
		effKey = max(minMidiKey, min(allowedMax, baseKey))
	}
	if truncate {
		effKey = max(minMidiKey, min(maxMidiKey, effKey))
		if room := midiKeys - effKey; n > room {
			n = room
			warning = true
		}
	}
	out := make([]Degree, n)
	for i, d := range degs[:n] {
		d.Step = i
		d.Key = effKey + i
		out[i] = d
	}
	return out, effKey, warning
}
