package pfstruct

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrEmptySheet indicates the first sheet contains no rows at all.
var ErrEmptySheet = errors.New("sheet is empty")

// ErrNotNumeric indicates non-numeric content in a numeric field.
var ErrNotNumeric = errors.New("could not convert value to float")

// ErrColumnCount indicates the sheet width does not match the holdings columns.
var ErrColumnCount = errors.New("column count mismatch")

// Components reported by ExtractionError.
const (
	ComponentWorkbook        = "workbook"
	ComponentPersonalDetails = "personal_details"
	ComponentSummary         = "summary"
	ComponentHoldings        = "holdings"
)

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "workbook", "personal_details", "summary", "holdings"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
