package parser

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const samplePolar = `AoA,Cl,Cd,cm_x0.00,cm_x0.16,cm_x0.50
-4,-0.2,0.012,-0.05,-0.04,-0.01
0,0.25,0.010,-0.06,-0.03,0.00
4,0.70,0.013,-0.07,-0.02,0.01
8,1.10,0.021,-0.08,-0.01,0.02
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWellFormedCSV(t *testing.T) {
	path := writeFile(t, "polar.csv", samplePolar)

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, table.Rows())
	assert.Equal(t, path, table.Source)
	lo, hi := table.AngleRange()
	assert.Equal(t, -4.0, lo)
	assert.Equal(t, 8.0, hi)

	if diff := cmp.Diff([]float64{-0.2, 0.25, 0.70, 1.10}, table.Cl); diff != "" {
		t.Errorf("Cl mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"AoA", "Cl", "Cd", "cm_x0.00", "cm_x0.16", "cm_x0.50"}, table.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	cm, ok := table.Moment(0.16)
	require.True(t, ok)
	assert.Equal(t, []float64{-0.04, -0.03, -0.02, -0.01}, cm)

	_, ok = table.Moment(0.32)
	assert.False(t, ok)
	assert.Equal(t, []string{"cm_x0.50"}, table.IgnoredMomentColumns())
}

func TestLoadNonexistentPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	table, err := Load(missing)
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), missing)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultCSV), []byte(samplePolar), 0o644))
	t.Chdir(dir)

	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCSV, table.Source)
	assert.Equal(t, 4, table.Rows())
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	path := writeFile(t, "nocl.csv", "AoA,Cd\n0,0.01\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Cl")
	assert.False(t, IsNotFound(err))
}

func TestParseCSVBadNumber(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("AoA,Cl,Cd\n0,abc,0.01\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "Cl")
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("AoA,Cl,Cd\n0,0.1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CSV data")
}

func TestParseCSVTrimsHeaderAndSkipsBlankRows(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(" AoA , Cl , Cd\n1,0.1,0.01\n,,\n2,0.2,0.02\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Rows())
	assert.True(t, table.HasColumn("AoA"))
	assert.Equal(t, []float64{1, 2}, table.AoA)
}

func TestParseCSVStripsBOM(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("\ufeffAoA,Cl,Cd\n0,0.2,0.01\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"AoA", "Cl", "Cd"}, table.Columns)
	assert.Equal(t, []float64{0}, table.AoA)
}

func TestParseCSVMissingValues(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("AoA,Cl,Cd,cm_x0.16\n0,0.2,0.01,\n2,NaN,0.012,-0.02\n4,0.6,0.015,-0.03\n"))
	require.NoError(t, err)
	require.Equal(t, 3, table.Rows())

	cm, ok := table.Moment(0.16)
	require.True(t, ok)
	assert.True(t, math.IsNaN(cm[0]))
	assert.Equal(t, []float64{-0.02, -0.03}, cm[1:])
	assert.True(t, math.IsNaN(table.Cl[1]))
	assert.Equal(t, 0.6, table.Cl[2])
}

func TestAngleRangeIgnoresMissing(t *testing.T) {
	table := NewPolarTable("")
	table.AoA = []float64{math.NaN(), -2, 6, math.NaN()}
	lo, hi := table.AngleRange()
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 6.0, hi)

	table.AoA = []float64{math.NaN()}
	lo, hi = table.AngleRange()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("AoA,Cl,Cd\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Rows())
	assert.Contains(t, table.Warnings, "no data rows found")
}

func TestMomentColumn(t *testing.T) {
	assert.Equal(t, "cm_x0.00", MomentColumn(0))
	assert.Equal(t, "cm_x0.16", MomentColumn(0.16))
	assert.Equal(t, "cm_x1.60", MomentColumn(1.6))
	assert.Len(t, ChordPositions, 11)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polar.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"AoA", "Cl", "Cd", "cm_x0.32"},
		{0, 0.2, 0.01, -0.02},
		{5, 0.7, 0.015, -0.03},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, []float64{0, 5}, table.AoA)
	cm, ok := table.Moment(0.32)
	require.True(t, ok)
	assert.Equal(t, []float64{-0.02, -0.03}, cm)
}
