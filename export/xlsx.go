package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lbimbi/sim/tuning"
)

// series fill colors in the comparison workbook
const (
	fillHeaderGray = "DDDDDD"
	fillCustomRed  = "FFCCCC"
	fillHarmGreen  = "CCFFCC"
	fillSubYellow  = "FFFFCC"
	fillTetBlue    = "CCE5FF"
)

// WriteSystemXlsx writes <base>_system.xlsx with one sheet mirroring the
// system text table.
func WriteSystemXlsx(base string, degs []tuning.Degree) (string, error) {
	path := base + "_system.xlsx"
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "System"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return path, fmt.Errorf("system xlsx: %w", err)
	}
	if err := writeHeaderRow(f, sheet, []string{"Step", "MIDI", "Ratio", "Hz"}, fillHeaderGray); err != nil {
		return path, fmt.Errorf("system xlsx: %w", err)
	}
	for i, d := range degs {
		row := i + 2
		if err := f.SetSheetRow(sheet, cell(1, row), &[]interface{}{d.Step, d.Key, d.Ratio, d.Hz}); err != nil {
			return path, fmt.Errorf("system xlsx: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return path, fmt.Errorf("system xlsx: %w", err)
	}
	return path, nil
}

// WriteCompareXlsx writes <base>_compare.xlsx, one sheet with the custom,
// harmonic, subharmonic and 12-TET columns filled in their series colors.
// Deltas are written as absolute values; cells of exhausted series stay
// empty.
func WriteCompareXlsx(base string, rows []tuning.ComparisonRow) (string, error) {
	path := base + "_compare.xlsx"
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Compare"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return path, fmt.Errorf("compare xlsx: %w", err)
	}
	headers := []string{
		"Step", "MIDI", "Ratio",
		"Custom_Hz", "Harmonic_Hz", "|DeltaHz_Harm|",
		"Subharm_Hz", "|DeltaHz_Sub|",
		"TET_Hz", "TET_Note", "|DeltaHz_TET|",
	}
	if err := writeHeaderRow(f, sheet, headers, fillTetBlue); err != nil {
		return path, fmt.Errorf("compare xlsx: %w", err)
	}

	styles := map[int]string{4: fillCustomRed, 5: fillHarmGreen, 7: fillSubYellow, 9: fillTetBlue, 10: fillTetBlue}
	styleIDs := make(map[int]int, len(styles))
	for col, color := range styles {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return path, fmt.Errorf("compare xlsx: %w", err)
		}
		styleIDs[col] = id
	}

	for i, r := range rows {
		rowNum := i + 2
		vals := []interface{}{
			r.Step, r.Key, r.Ratio, r.CustomHz,
			refCellValue(r.Harmonic), refDeltaValue(r.Harmonic),
			refCellValue(r.Subharmonic), refDeltaValue(r.Subharmonic),
			refCellValue(r.TET), tetNoteValue(r), refDeltaValue(r.TET),
		}
		if err := f.SetSheetRow(sheet, cell(1, rowNum), &vals); err != nil {
			return path, fmt.Errorf("compare xlsx: %w", err)
		}
		for col, id := range styleIDs {
			ref := cell(col, rowNum)
			if err := f.SetCellStyle(sheet, ref, ref, id); err != nil {
				return path, fmt.Errorf("compare xlsx: %w", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return path, fmt.Errorf("compare xlsx: %w", err)
	}
	return path, nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, color string) error {
	vals := make([]interface{}, len(headers))
	for i, h := range headers {
		vals[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &vals); err != nil {
		return err
	}
	id, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", cell(len(headers), 1), id)
}

func refCellValue(v tuning.RefValue) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Hz
}

func refDeltaValue(v tuning.RefValue) interface{} {
	if !v.Valid {
		return nil
	}
	if v.Delta < 0 {
		return -v.Delta
	}
	return v.Delta
}

func tetNoteValue(r tuning.ComparisonRow) interface{} {
	if !r.TET.Valid {
		return nil
	}
	return r.TETNote
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
