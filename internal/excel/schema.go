package excel

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// HeaderRowIndex is the 0-based sheet row holding column headers. The rows
// above it are title/instruction rows and are never read.
const HeaderRowIndex = 2

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Column is one inferred staging column. SheetCol records the 0-based sheet
// position the column was inferred from, so data cells are always read from
// the position their header occupied even when other header cells were
// skipped.
type Column struct {
	Name     string
	SheetCol int
}

// InferColumns derives the staging schema from the header row: textual
// headers are sanitized to alphanumeric identifiers, numeric headers become
// COLUMN_<index>, and any other header cell produces no column.
func InferColumns(f *excelize.File, sheet string) ([]Column, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if len(rows) <= HeaderRowIndex {
		return nil, fmt.Errorf("header row is missing in sheet %q", sheet)
	}

	headerRow := rows[HeaderRowIndex]
	columns := make([]Column, 0, len(headerRow))
	for i := range headerRow {
		axis, err := excelize.CoordinatesToCellName(i+1, HeaderRowIndex+1)
		if err != nil {
			return nil, fmt.Errorf("header cell %d: %w", i, err)
		}

		name, ok := headerColumnName(f, sheet, axis, i)
		if !ok {
			continue
		}
		columns = append(columns, Column{Name: name, SheetCol: i})
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("no usable header cells in sheet %q", sheet)
	}

	return columns, nil
}

// headerColumnName classifies a single header cell. Textual cells yield their
// sanitized text, numeric cells a synthetic name, everything else is ignored.
func headerColumnName(f *excelize.File, sheet, axis string, index int) (string, bool) {
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return "", false
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		value, err := f.GetCellValue(sheet, axis)
		if err != nil {
			return "", false
		}
		return sanitizedOrIgnored(value)
	case excelize.CellTypeBool, excelize.CellTypeError, excelize.CellTypeFormula:
		return "", false
	}

	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return "", false
	}

	if _, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
		return fmt.Sprintf("COLUMN_%d", index), true
	}

	return sanitizedOrIgnored(raw)
}

// sanitizedOrIgnored drops headers whose text sanitizes to nothing; a
// nameless staging column could never be resolved by keyword and would only
// poison the name-to-index map.
func sanitizedOrIgnored(value string) (string, bool) {
	name := SanitizeColumnName(value)
	if name == "" {
		return "", false
	}
	return name, true
}

// SanitizeColumnName strips every non-alphanumeric character from a header.
func SanitizeColumnName(header string) string {
	return nonAlphanumeric.ReplaceAllString(header, "")
}
