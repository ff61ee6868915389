// Package parser reads worksheet cells from Excel workbooks.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
	"github.com/xuri/excelize/v2"
)

// HeaderRows is the number of leading worksheet rows consumed as the frame
// header. Grid row 0 is the worksheet row right after them.
const HeaderRows = 1

// ErrNoSheets indicates a workbook without any worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// ReadFirstSheet reads the first worksheet of the workbook.
func ReadFirstSheet(f *excelize.File) (*models.Sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return ReadSheet(f, sheets[0])
}

// ReadSheet reads a worksheet into a grid of typed cell values.
// Numeric cells become int64 or float64, boolean cells become bool and
// everything else is kept as the raw string. Empty cells are nil.
func ReadSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := &models.Sheet{Name: sheetName}
	for rowIdx, row := range rows {
		values, err := readRow(f, sheetName, rowIdx+1, row)
		if err != nil {
			return nil, err
		}
		if rowIdx < HeaderRows {
			sheet.Header = values
			continue
		}
		sheet.Rows = append(sheet.Rows, values)
	}

	return sheet, nil
}

// readRow converts the raw strings of a row. rowNum is 1-based.
func readRow(f *excelize.File, sheetName string, rowNum int, row []string) ([]interface{}, error) {
	values := make([]interface{}, len(row))
	for colIdx, raw := range row {
		if raw == "" {
			continue
		}
		cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
		if err != nil {
			return nil, err
		}
		cellType, err := f.GetCellType(sheetName, cellName)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", cellName, err)
		}
		values[colIdx] = CellValue(cellType, raw)
	}
	return values, nil
}

// CellValue converts a raw cell value according to its stored type. Formula
// errors such as #N/A read as empty cells. Date cells keep their serial
// number.
func CellValue(cellType excelize.CellType, raw string) interface{} {
	switch cellType {
	case excelize.CellTypeError:
		return nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return parseValue(raw)
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
