package pfstruct

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/parser"
	"github.com/xuri/excelize/v2"
)

// Extract extracts the portfolio from an Excel file on disk.
func Extract(path string) (*models.Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, invalidWorkbook(err)
	}
	defer f.Close()

	return ExtractFile(f, filepath.Base(path))
}

// ExtractReader extracts the portfolio from workbook bytes read from r.
// name is the declared file name and only used in error messages.
func ExtractReader(r io.Reader, name string) (*models.Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, invalidWorkbook(err)
	}
	defer f.Close()

	return ExtractFile(f, name)
}

// ExtractFile extracts the portfolio from the first sheet of an open workbook.
func ExtractFile(f *excelize.File, name string) (*models.Result, error) {
	sheet, err := parser.ReadFirstSheet(f)
	if err != nil {
		return nil, NewExtractionError("", ComponentWorkbook, fmt.Errorf("read %s: %w", name, err))
	}
	return ExtractSheet(sheet)
}

func invalidWorkbook(err error) error {
	return NewExtractionError("", ComponentWorkbook, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
}

// ExtractSheet locates the personal details, summary and holdings blocks of
// a sheet by their fixed offsets and normalizes their values.
func ExtractSheet(sheet *models.Sheet) (*models.Result, error) {
	if sheet.Len() == 0 && len(sheet.Header) == 0 {
		return nil, NewExtractionError(sheet.Name, ComponentWorkbook, ErrEmptySheet)
	}

	details, err := extractPersonalDetails(sheet)
	if err != nil {
		return nil, NewExtractionError(sheet.Name, ComponentPersonalDetails, err)
	}

	summary, err := extractSummary(sheet)
	if err != nil {
		return nil, NewExtractionError(sheet.Name, ComponentSummary, err)
	}

	holdings, err := extractHoldings(sheet)
	if err != nil {
		return nil, NewExtractionError(sheet.Name, ComponentHoldings, err)
	}

	return &models.Result{
		PersonalDetails: details,
		Summary:         summary,
		Holdings:        holdings,
	}, nil
}

func extractPersonalDetails(sheet *models.Sheet) (models.PersonalDetails, error) {
	var details models.PersonalDetails
	var err error

	if details.Name, err = sheet.At(NameRow, DetailsValueCol); err != nil {
		return details, err
	}
	if details.Phone, err = sheet.At(PhoneRow, DetailsValueCol); err != nil {
		return details, err
	}
	if details.PAN, err = sheet.At(PANRow, DetailsValueCol); err != nil {
		return details, err
	}
	return details, nil
}

func extractSummary(sheet *models.Sheet) (models.Summary, error) {
	var summary models.Summary

	total, err := sheet.At(SummaryValueRow, TotalInvestmentsCol)
	if err != nil {
		return summary, err
	}
	current, err := sheet.At(SummaryValueRow, CurrentValueCol)
	if err != nil {
		return summary, err
	}
	if summary.TotalProfitLoss, err = sheet.At(SummaryValueRow, TotalProfitLossCol); err != nil {
		return summary, err
	}
	if summary.ProfitLossPercent, err = sheet.At(SummaryValueRow, ProfitLossPercentCol); err != nil {
		return summary, err
	}

	if summary.TotalInvestments, err = toOptionalFloat(total); err != nil {
		return summary, fmt.Errorf("total investments: %w", err)
	}
	if summary.CurrentValue, err = toOptionalFloat(current); err != nil {
		return summary, fmt.Errorf("current value: %w", err)
	}
	return summary, nil
}

func extractHoldings(sheet *models.Sheet) ([]models.Holding, error) {
	if width := sheet.Width(); width != len(HoldingColumns) {
		return nil, fmt.Errorf("%w: sheet has %d columns, holdings have %d",
			ErrColumnCount, width, len(HoldingColumns))
	}

	holdings := []models.Holding{}
	headerSeen := false
	for rowIdx := HoldingsStartRow; rowIdx < sheet.Len(); rowIdx++ {
		row := sheet.Rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}

		holding, err := holdingFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIdx, err)
		}
		holdings = append(holdings, holding)
	}
	return holdings, nil
}

// holdingFromRow maps a row positionally onto the holdings columns.
func holdingFromRow(row []interface{}) (models.Holding, error) {
	cell := func(col int) interface{} {
		if col < len(row) && !models.IsEmpty(row[col]) {
			return row[col]
		}
		return nil
	}
	text := func(col int) interface{} {
		if v := cell(col); v != nil {
			return v
		}
		return int64(0)
	}

	numbers := make([]float64, len(NumericHoldingColumns))
	for i, name := range NumericHoldingColumns {
		v := cell(columnIndex(name))
		if v == nil {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return models.Holding{}, fmt.Errorf("column %q: %w", name, err)
		}
		numbers[i] = f
	}

	return models.Holding{
		SchemeName:    text(columnIndex(ColSchemeName)),
		AMC:           text(columnIndex(ColAMC)),
		Category:      text(columnIndex(ColCategory)),
		SubCategory:   text(columnIndex(ColSubCategory)),
		FolioNo:       text(columnIndex(ColFolioNo)),
		Source:        text(columnIndex(ColSource)),
		Units:         numbers[0],
		InvestedValue: numbers[1],
		CurrentValue:  numbers[2],
		Returns:       numbers[3],
		XIRR:          text(columnIndex(ColXIRR)),
	}, nil
}

func columnIndex(name string) int {
	for i, col := range HoldingColumns {
		if col == name {
			return i
		}
	}
	return -1
}

func isEmptyRow(row []interface{}) bool {
	for _, v := range row {
		if !models.IsEmpty(v) {
			return false
		}
	}
	return true
}
