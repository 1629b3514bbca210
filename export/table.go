package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/term"

	"github.com/lbimbi/sim/tuning"
)

// WriteSystemTable writes <base>_system.txt, one row per degree with
// fixed-width columns. Degrees are expected ascending by Hz.
func WriteSystemTable(base string, degs []tuning.Degree) (string, error) {
	path := base + "_system.txt"
	headers := []string{"Step", "MIDI", "Ratio", "Hz"}
	rows := lo.Map(degs, func(d tuning.Degree, _ int) []string {
		return []string{
			fmt.Sprintf("%d", d.Step),
			fmt.Sprintf("%d", d.Key),
			fmt.Sprintf("%.10f", d.Ratio),
			fmt.Sprintf("%.6f", d.Hz),
		}
	})
	if err := os.WriteFile(path, []byte(formatColumns(headers, rows)), 0644); err != nil {
		return path, fmt.Errorf("write system table: %w", err)
	}
	return path, nil
}

// WriteCompareTable writes <base>_compare.txt. Reference cells left empty
// when their series ran out; custom and harmonic values within the proximity
// threshold carry a trailing "≈" marker.
func WriteCompareTable(base string, rows []tuning.ComparisonRow) (string, error) {
	path := base + "_compare.txt"
	headers := []string{
		"Step", "MIDI", "Ratio",
		"Custom_Hz", "Harmonic_Hz", "DeltaHz_Harm",
		"Subharm_Hz", "DeltaHz_Sub",
		"TET_Hz", "TET_Note", "DeltaHz_TET",
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		approx := ""
		if r.Harmonic.Valid && r.Harmonic.Near {
			approx = "≈"
		}
		harmHz, harmDelta := refCells(r.Harmonic, approx)
		subHz, subDelta := refCells(r.Subharmonic, "")
		tetHz, tetDelta := refCells(r.TET, "")
		tetNote := ""
		if r.TET.Valid {
			tetNote = r.TETNote
		}
		cells = append(cells, []string{
			fmt.Sprintf("%d", r.Step),
			fmt.Sprintf("%d", r.Key),
			fmt.Sprintf("%.10f", r.Ratio),
			fmt.Sprintf("%.6f%s", r.CustomHz, approx),
			harmHz, harmDelta,
			subHz, subDelta,
			tetHz, tetNote, tetDelta,
		})
	}
	if err := os.WriteFile(path, []byte(formatColumns(headers, cells)), 0644); err != nil {
		return path, fmt.Errorf("write compare table: %w", err)
	}
	return path, nil
}

func refCells(v tuning.RefValue, marker string) (hz, delta string) {
	if !v.Valid {
		return "", ""
	}
	return fmt.Sprintf("%.6f%s", v.Hz, marker), fmt.Sprintf("%.6f", v.Delta)
}

// pad each column to its widest cell, two spaces between columns
func formatColumns(headers []string, rows [][]string) string {
	widths := lo.Map(headers, func(h string, _ int) int { return len(h) })
	for _, row := range rows {
		for c, val := range row {
			if w := cellWidth(val); w > widths[c] {
				widths[c] = w
			}
		}
	}
	line := func(vals []string) string {
		padded := make([]string, len(vals))
		for i, v := range vals {
			padded[i] = v + strings.Repeat(" ", widths[i]-cellWidth(v))
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}
	b := strings.Builder{}
	b.WriteString(line(headers) + "\n")
	for _, row := range rows {
		b.WriteString(line(row) + "\n")
	}
	return b.String()
}

// width in runes, not bytes, so the "≈" marker pads correctly
func cellWidth(s string) int {
	return len([]rune(s))
}

// PrintStepGrid writes a column-major Step/Hz grid sized to the terminal
// width, steps numbered from 1. Falls back to 80 columns when w is not a
// terminal.
func PrintStepGrid(w io.Writer, degs []tuning.Degree) {
	termWidth := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			termWidth = tw
		}
	}
	printStepGrid(w, degs, termWidth)
}

func printStepGrid(w io.Writer, degs []tuning.Degree, termWidth int) {
	type pair struct{ step, hz string }
	pairs := make([]pair, len(degs))
	stepW, hzW := len("Step"), len("Hz")
	for i, d := range degs {
		pairs[i] = pair{fmt.Sprintf("%d", i+1), fmt.Sprintf("%.2f", d.Hz)}
		if len(pairs[i].step) > stepW {
			stepW = len(pairs[i].step)
		}
		if len(pairs[i].hz) > hzW {
			hzW = len(pairs[i].hz)
		}
	}
	const gap = 3
	cellW := stepW + 1 + hzW
	cols := 1
	if cellW < termWidth {
		cols = (termWidth + gap) / (cellW + gap)
	}

	header := padRight("Step", stepW) + " " + padRight("Hz", hzW)
	if len(pairs) == 0 {
		fmt.Fprintln(w, header)
		return
	}
	rowCount := (len(pairs) + cols - 1) / cols
	headerCells := make([]string, cols)
	for i := range headerCells {
		headerCells[i] = header
	}
	fmt.Fprintln(w, strings.Join(headerCells, strings.Repeat(" ", gap)))
	for r := 0; r < rowCount; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			idx := c*rowCount + r
			if idx < len(pairs) {
				p := pairs[idx]
				cells = append(cells, padLeft(p.step, stepW)+" "+padLeft(p.hz, hzW))
			}
		}
		fmt.Fprintln(w, strings.Join(cells, strings.Repeat(" ", gap)))
	}
}

func padRight(s string, w int) string { return s + strings.Repeat(" ", w-len(s)) }
func padLeft(s string, w int) string  { return strings.Repeat(" ", w-len(s)) + s }
