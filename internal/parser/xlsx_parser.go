package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads a polar table from the first sheet of a workbook.
// The sheet uses the same layout as the CSV file: a header row, then one
// row per angle of attack.
func ParseXLSX(path string) (*PolarTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return buildTable(path, rows)
}
