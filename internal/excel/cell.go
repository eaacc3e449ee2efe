package excel

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Builtin number format IDs that render a numeric cell as a date or time.
var dateNumFmtIDs = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true,
	21: true, 22: true, 27: true, 28: true, 29: true, 30: true, 31: true,
	32: true, 33: true, 34: true, 35: true, 36: true, 45: true, 46: true,
	47: true, 50: true, 51: true, 52: true, 53: true, 54: true, 55: true,
	56: true, 57: true, 58: true,
}

// cellValue renders one cell to its staged string form. The second return is
// false when the cell kind is not stageable, in which case the caller emits
// an empty placeholder so later columns stay aligned.
//
// Rendering rules: strings verbatim; numerics without a fraction as integers,
// otherwise as decimals; date-styled numerics as yyyy-MM-dd; booleans as
// true/false; formulas evaluated first and rendered by the evaluated kind.
func cellValue(f *excelize.File, sheet, axis string) (string, bool) {
	if formula, err := f.GetCellFormula(sheet, axis); err == nil && formula != "" {
		return evaluatedValue(f, sheet, axis)
	}

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
		return value, true
	case excelize.CellTypeBool:
		raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
		if err != nil {
			return "", false
		}
		return strconv.FormatBool(raw == "1" || strings.EqualFold(raw, "true")), true
	case excelize.CellTypeError:
		return "", false
	}

	// Plain numeric cells carry no explicit type attribute.
	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return "", false
	}

	if serial, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
		if isDateStyled(f, sheet, axis) {
			if t, convErr := excelize.ExcelDateToTime(serial, false); convErr == nil {
				return t.Format("2006-01-02"), true
			}
		}
		return formatNumeric(serial), true
	}

	return raw, true
}

// evaluatedValue computes a formula cell and renders the result by its
// evaluated kind.
func evaluatedValue(f *excelize.File, sheet, axis string) (string, bool) {
	result, err := f.CalcCellValue(sheet, axis)
	if err != nil {
		return "", false
	}

	if result == "TRUE" || result == "FALSE" {
		return strings.ToLower(result), true
	}

	if value, parseErr := strconv.ParseFloat(result, 64); parseErr == nil {
		return formatNumeric(value), true
	}

	return result, true
}

func isDateStyled(f *excelize.File, sheet, axis string) bool {
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}

	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}

	if style.CustomNumFmt != nil {
		return containsDateTokens(*style.CustomNumFmt)
	}

	return dateNumFmtIDs[style.NumFmt]
}

func containsDateTokens(format string) bool {
	lower := strings.ToLower(format)
	return strings.Contains(lower, "y") ||
		strings.Contains(lower, "d") ||
		strings.Contains(lower, "h") ||
		strings.Contains(lower, "mm")
}

func formatNumeric(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
