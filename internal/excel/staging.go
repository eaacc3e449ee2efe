package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// StagingTable is the transient, in-memory stand-in for the generic staging
// table raw rows are loaded into before normalization. It lives for exactly
// one import call, which keeps repeated imports with differing headers from
// drifting a persisted schema.
type StagingTable struct {
	columns []Column
	rows    [][]string
}

// LoadStaging infers the schema from the sheet's header row and stages every
// data row below it as strings. Loading stops at the first fully blank row,
// which is treated as the end-of-data sentinel; rows after it are never read.
func LoadStaging(f *excelize.File, sheet string) (*StagingTable, error) {
	index, err := f.GetSheetIndex(sheet)
	if err != nil || index == -1 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	columns, err := InferColumns(f, sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	table := &StagingTable{columns: columns}
	for rowIndex := HeaderRowIndex + 1; rowIndex < len(rows); rowIndex++ {
		if isBlankRow(rows[rowIndex]) {
			break
		}

		staged := make([]string, len(columns))
		for i, column := range columns {
			axis, err := excelize.CoordinatesToCellName(column.SheetCol+1, rowIndex+1)
			if err != nil {
				return nil, fmt.Errorf("cell at row %d col %d: %w", rowIndex, column.SheetCol, err)
			}

			// Unhandled cell kinds stage an empty placeholder instead of
			// being dropped, so values never shift across columns.
			value, ok := cellValue(f, sheet, axis)
			if !ok {
				value = ""
			}
			staged[i] = value
		}
		table.rows = append(table.rows, staged)
	}

	return table, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ColumnIndices maps each column name to its 1-based ordinal position. When
// two columns share a name the later one wins, matching what a generic SQL
// result set would report.
func (t *StagingTable) ColumnIndices() map[string]int {
	indices := make(map[string]int, len(t.columns))
	for i, column := range t.columns {
		indices[column.Name] = i + 1
	}
	return indices
}

// Rows returns every staged row as ordered string cells.
func (t *StagingTable) Rows() [][]string {
	return t.rows
}

// ResolveColumns returns the 0-based indices of every column whose name
// contains keyword as a case-insensitive substring, in ascending order.
// Multiple columns may match one keyword; callers apply them in order with
// the last value winning.
func ResolveColumns(columnIndices map[string]int, keyword string) []int {
	lower := strings.ToLower(keyword)

	var indices []int
	for name, ordinal := range columnIndices {
		if strings.Contains(strings.ToLower(name), lower) {
			indices = append(indices, ordinal-1)
		}
	}

	sort.Ints(indices)
	return indices
}

// CellAt returns the value at a 0-based column index, or the empty string
// when the row is shorter than the index.
func CellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
