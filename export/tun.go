package export

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// WriteTun writes <base>.tun with an [Exact Tuning] section covering all 128
// MIDI notes. The given ratios map to consecutive keys starting at baseKey;
// keys outside that range fall back to 12-TET relative to baseFreq.
func WriteTun(base, name string, ratios []float64, baseKey int, baseFreq float64) (string, error) {
	path := base + ".tun"
	b := strings.Builder{}
	b.WriteString("[Tuning]\n")
	b.WriteString("FormatVersion=1\n")
	fmt.Fprintf(&b, "Name=%s\n\n", name)
	b.WriteString("[Exact Tuning]\n")
	fmt.Fprintf(&b, "; basekey=%d basefrequency=%.6fHz\n", baseKey, baseFreq)

	for n := 0; n < 128; n++ {
		freq := baseFreq * math.Pow(2, float64(n-baseKey)/12)
		if baseKey >= 0 && baseKey <= 127 && n >= baseKey && n < baseKey+len(ratios) {
			freq = baseFreq * ratios[n-baseKey]
		}
		fmt.Fprintf(&b, "Note %d=%.10f Hz\n", n, freq)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return path, fmt.Errorf("write tun: %w", err)
	}
	return path, nil
}
