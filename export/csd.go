// Package export writes the boundary file formats: Csound cpstun tables,
// AnaMark .tun files, fixed-width text tables, xlsx workbooks and scale
// audition MIDI files. It only consumes the core's output structures.
package export

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const csdSkeleton = `<CsoundSynthesizer>
<CsOptions>

</CsOptions>
<CsInstruments>

</CsInstruments>
<CsScore>

</CsScore>
</CsoundSynthesizer>
`

// matches f-statement numbers in a Csound score
var fStatementRegexp = regexp.MustCompile(`\bf\s*(\d+)\b`)

// CpstunTable describes one cpstun GEN -2 table: the header quad
// [numgrades, interval, basefreq, basekey] followed by the ratios.
type CpstunTable struct {
	Ratios   []float64
	BaseKey  int
	BaseFreq float64
	// repetition interval of the system; 0 marks a non-repeating table.
	// With Inferred set the interval is derived from the ratios instead
	// (2.0 when everything sits inside the octave window, else 0).
	Interval float64
	Inferred bool
}

// WriteCpstun appends a cpstun table to <base>.csd, creating a skeleton file
// first when none exists. Returns the f-table number written and whether the
// file existed before.
func WriteCpstun(base string, table CpstunTable) (int, bool, error) {
	path := base + ".csd"
	existed := true
	if _, err := os.Stat(path); err != nil {
		existed = false
		if err := os.WriteFile(path, []byte(csdSkeleton), 0644); err != nil {
			return 0, false, fmt.Errorf("create csd: %w", err)
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, existed, fmt.Errorf("read csd: %w", err)
	}
	fnum := maxTableNumber(string(content)) + 1

	ratios := append([]float64(nil), table.Ratios...)
	sort.Float64s(ratios)

	data := make([]string, 0, len(ratios)+4)
	data = append(data,
		strconv.Itoa(len(ratios)),
		strconv.FormatFloat(intervalField(table, ratios), 'g', 10, 64),
		strconv.FormatFloat(table.BaseFreq, 'g', 10, 64),
		strconv.Itoa(table.BaseKey),
	)
	for _, r := range ratios {
		data = append(data, strconv.FormatFloat(r, 'f', 10, 64))
	}

	prefix := fmt.Sprintf("f %d 0 %d -2 ", fnum, len(data))
	block := commentHeader(prefix, data, table) + prefix + strings.Join(data, " ") + "\n"

	out := string(content)
	if idx := strings.LastIndex(out, "</CsScore>"); idx >= 0 {
		out = out[:idx] + block + out[idx:]
	} else {
		out += "\n<CsScore>\n" + block + "</CsScore>\n"
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fnum, existed, fmt.Errorf("write csd: %w", err)
	}
	return fnum, existed, nil
}

// return the highest f-table number present in a score, 0 if none
func maxTableNumber(content string) int {
	maxNum := 0
	for _, m := range fStatementRegexp.FindAllStringSubmatch(content, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > maxNum {
			maxNum = n
		}
	}
	return maxNum
}

// resolve the interval header field, inferring from the ratio window when
// requested: the octave when all ratios are in [1, 2] inclusive, else 0
func intervalField(table CpstunTable, ratios []float64) float64 {
	if !table.Inferred {
		if table.Interval <= 0 {
			return 0
		}
		return table.Interval
	}
	const eps = 1e-9
	for _, r := range ratios {
		if r < 1-eps || r > 2+eps {
			return 0
		}
	}
	return 2
}

// build comment lines with labels aligned under the start of each data token
func commentHeader(prefix string, data []string, table CpstunTable) string {
	positions := make([]int, len(data))
	col := len(prefix)
	for i, tok := range data {
		positions[i] = col
		col += len(tok) + 1
	}
	line := func(labels map[int]string) string {
		indices := make([]int, 0, len(labels))
		for i := range labels {
			indices = append(indices, i)
		}
		sort.Ints(indices)
		b := strings.Builder{}
		b.WriteString(";")
		for _, i := range indices {
			target := 1 + positions[i]
			if target <= b.Len() {
				target = b.Len() + 1
			}
			b.WriteString(strings.Repeat(" ", target-b.Len()))
			b.WriteString(labels[i])
		}
		return b.String() + "\n"
	}
	return line(map[int]string{0: "numgrades", 2: "basefreq", 4: "tuning-ratios ......."}) +
		line(map[int]string{1: "interval", 3: "basekey"}) +
		fmt.Sprintf("; cpstun table | basekey=%d basefrequency=%.6fHz\n", table.BaseKey, table.BaseFreq)
}
