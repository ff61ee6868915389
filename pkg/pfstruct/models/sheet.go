// Package models defines data structures for portfolio extraction.
package models

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a cell access outside the bounds of a sheet.
var ErrOutOfRange = errors.New("index out of range")

// Sheet represents the cell grid of a single worksheet.
//
// Cells hold nil (empty), string, int64, float64 or bool values.
// Rows may be ragged; cells past the end of a short row read as empty.
type Sheet struct {
	// Name is the worksheet name.
	Name string
	// Header holds the first worksheet row, which is not part of the grid.
	Header []interface{}
	// Rows contains the cell values, 0-based.
	Rows [][]interface{}
}

// Len returns the number of rows in the sheet.
func (s *Sheet) Len() int {
	return len(s.Rows)
}

// Width returns the number of columns, which is the length of the widest
// row, header included.
func (s *Sheet) Width() int {
	width := len(s.Header)
	for _, row := range s.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// At returns the value at the given 0-based row and column.
func (s *Sheet) At(row, col int) (interface{}, error) {
	if row < 0 || row >= s.Len() {
		return nil, fmt.Errorf("%w: row %d (sheet has %d rows)", ErrOutOfRange, row, s.Len())
	}
	if width := s.Width(); col < 0 || col >= width {
		return nil, fmt.Errorf("%w: column %d (sheet has %d columns)", ErrOutOfRange, col, width)
	}
	r := s.Rows[row]
	if col >= len(r) {
		return nil, nil
	}
	return r[col], nil
}

// IsEmpty reports whether v represents an empty cell.
func IsEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	}
	return false
}
