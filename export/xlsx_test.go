package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lbimbi/sim/tuning"
)

func TestWriteSystemXlsx(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out")
	path, err := WriteSystemXlsx(base, testDegrees())
	require.NoError(t, err)
	assert.Equal(t, base+"_system.xlsx", path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"System"}, f.GetSheetList())
	v, err := f.GetCellValue("System", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Step", v)
	v, err = f.GetCellValue("System", "D2")
	require.NoError(t, err)
	assert.Equal(t, "260", v)
	v, err = f.GetCellValue("System", "C4")
	require.NoError(t, err)
	assert.Equal(t, "1.5", v)
}

func TestWriteCompareXlsx(t *testing.T) {
	rows := tuning.Compare(testDegrees(), 260, 880, tuning.AlignNearest, 440)
	base := filepath.Join(t.TempDir(), "out")
	path, err := WriteCompareXlsx(base, rows)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Compare"}, f.GetSheetList())
	v, err := f.GetCellValue("Compare", "K1")
	require.NoError(t, err)
	assert.Equal(t, "|DeltaHz_TET|", v)
	// first degree sits on the first harmonic: zero delta
	v, err = f.GetCellValue("Compare", "F2")
	require.NoError(t, err)
	assert.Equal(t, "0", v)
	// note label column
	v, err = f.GetCellValue("Compare", "J2")
	require.NoError(t, err)
	assert.Equal(t, "C4", v)
}

func TestWriteCompareXlsxExhaustedCellsEmpty(t *testing.T) {
	rows := tuning.Compare(testDegrees(), 260, 100, tuning.AlignSame, 440)
	base := filepath.Join(t.TempDir(), "out")
	path, err := WriteCompareXlsx(base, rows)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// the subharmonic series is spent after the first row
	v, err := f.GetCellValue("Compare", "G3")
	require.NoError(t, err)
	assert.Empty(t, v)
}
