package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Load reads a polar table from path. An empty path loads DefaultCSV.
// Spreadsheets (.xlsx, .xlsm) are read from their first sheet; any other
// extension is parsed as CSV.
func Load(path string) (*PolarTable, error) {
	if path == "" {
		path = DefaultCSV
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ParseXLSX(path)
	default:
		return ParseCSVFile(path)
	}
}

// ParseCSVFile reads a CSV polar file.
func ParseCSVFile(path string) (*PolarTable, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	table, err := ParseCSV(file)
	if err != nil {
		return nil, err
	}
	table.Source = path
	return table, nil
}

// ParseCSV reads a CSV polar table with a header row from r.
func ParseCSV(r io.Reader) (*PolarTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	return buildTable("", allRows)
}

// utf8BOM prefixes CSV files exported as "CSV UTF-8" by spreadsheets.
const utf8BOM = "\ufeff"

// buildTable turns raw string rows (header first) into a PolarTable.
// Shared by the CSV and spreadsheet loaders.
func buildTable(source string, rows [][]string) (*PolarTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row found")
	}

	table := NewPolarTable(source)
	index := make(map[string]int)
	for i, name := range rows[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		table.Columns = append(table.Columns, name)
		if _, dup := index[name]; dup {
			table.Warnings = append(table.Warnings, fmt.Sprintf("duplicate column %q, keeping the first one", name))
			continue
		}
		index[name] = i
	}

	for _, required := range []string{ColumnAoA, ColumnCl, ColumnCd} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var momentCols []string
	for _, name := range table.Columns {
		if strings.HasPrefix(name, MomentPrefix) {
			if _, seen := table.Moments[name]; !seen {
				table.Moments[name] = make([]float64, 0, len(rows)-1)
				momentCols = append(momentCols, name)
			}
		}
	}

	for rowIdx, row := range rows[1:] {
		if isBlank(row) { // Skip empty lines, typically at the end of the file
			continue
		}
		line := rowIdx + 2 // 1-based, counting the header

		aoa, err := cell(row, index[ColumnAoA], ColumnAoA, line)
		if err != nil {
			return nil, err
		}
		cl, err := cell(row, index[ColumnCl], ColumnCl, line)
		if err != nil {
			return nil, err
		}
		cd, err := cell(row, index[ColumnCd], ColumnCd, line)
		if err != nil {
			return nil, err
		}
		table.AoA = append(table.AoA, aoa)
		table.Cl = append(table.Cl, cl)
		table.Cd = append(table.Cd, cd)

		for _, name := range momentCols {
			v, err := cell(row, index[name], name, line)
			if err != nil {
				return nil, err
			}
			table.Moments[name] = append(table.Moments[name], v)
		}
	}

	if table.Rows() == 0 {
		table.Warnings = append(table.Warnings, "no data rows found")
	}
	return table, nil
}

// cell converts one value. Empty cells and cells past the end of a short
// row are missing values and read as NaN.
func cell(row []string, col int, name string, line int) (float64, error) {
	if col >= len(row) {
		return math.NaN(), nil
	}
	raw := strings.TrimSpace(row[col])
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: could not convert %s value '%s': %w", line, name, raw, err)
	}
	return v, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
