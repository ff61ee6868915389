package pfstruct

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/parser"
	"github.com/xuri/excelize/v2"
)

// fixture builds a workbook addressed by grid coordinates.
type fixture struct {
	t *testing.T
	f *excelize.File
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	return &fixture{t: t, f: f}
}

// set writes v at grid row/col, skipping the frame header row.
func (fx *fixture) set(row, col int, v interface{}) {
	fx.t.Helper()
	cell, err := excelize.CoordinatesToCellName(col+1, row+1+parser.HeaderRows)
	if err != nil {
		fx.t.Fatalf("Invalid coordinates: %v", err)
	}
	if err := fx.f.SetCellValue("Sheet1", cell, v); err != nil {
		fx.t.Fatalf("Failed to set %s: %v", cell, err)
	}
}

func (fx *fixture) setRow(row int, values ...interface{}) {
	fx.t.Helper()
	for col, v := range values {
		if v != nil {
			fx.set(row, col, v)
		}
	}
}

func (fx *fixture) save() string {
	fx.t.Helper()
	path := filepath.Join(fx.t.TempDir(), "portfolio.xlsx")
	if err := fx.f.SaveAs(path); err != nil {
		fx.t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func (fx *fixture) details() {
	fx.set(DetailsStartRow, 0, "Personal Details")
	fx.setRow(NameRow, "Name", "John Doe")
	fx.setRow(PhoneRow, "Phone", "1234567890")
	fx.setRow(PANRow, "PAN", "ABCDE1234F")
}

func (fx *fixture) summary(total, current interface{}) {
	fx.setRow(SummaryStartRow, "Summary", "Total Investments", "Current Value", "Total Profit/Loss", "% Profit/Loss")
	fx.setRow(SummaryValueRow, "Values", total, current, 20000, "20%")
}

func (fx *fixture) holdingsHeader(row int) {
	// Header text differs from the fixed labels on purpose.
	fx.setRow(row, "Fund", "House", "Cat", "Sub", "Folio", "Src", "Qty", "Cost", "Value", "Gain", "IRR")
}

func (fx *fixture) standard() {
	fx.details()
	fx.summary(100000, 120000)
	fx.holdingsHeader(HoldingsStartRow)
	fx.setRow(HoldingsStartRow+1, "Fund A", "AMC A", "Equity", "Large Cap", "123", "Direct", 100, 50000, 70000, 20000, "20%")
	fx.setRow(HoldingsStartRow+3, "Fund B", "AMC B", "Debt", "Short Duration", "456", "Regular", nil, "50000", 50000.5, nil, "5%")
}

func TestExtract(t *testing.T) {
	fx := newFixture(t)
	fx.standard()
	path := fx.save()

	result, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	details := result.PersonalDetails
	if details.Name != "John Doe" || details.Phone != "1234567890" || details.PAN != "ABCDE1234F" {
		t.Errorf("Unexpected personal details: %+v", details)
	}

	summary := result.Summary
	if summary.TotalInvestments == nil || *summary.TotalInvestments != 100000.0 {
		t.Errorf("Expected total investments 100000, got %v", summary.TotalInvestments)
	}
	if summary.CurrentValue == nil || *summary.CurrentValue != 120000.0 {
		t.Errorf("Expected current value 120000, got %v", summary.CurrentValue)
	}
	if summary.TotalProfitLoss != int64(20000) {
		t.Errorf("Expected raw int64(20000), got %v (type: %T)", summary.TotalProfitLoss, summary.TotalProfitLoss)
	}
	if summary.ProfitLossPercent != "20%" {
		t.Errorf("Expected '20%%', got %v", summary.ProfitLossPercent)
	}

	if len(result.Holdings) != 2 {
		t.Fatalf("Expected 2 holdings, got %d", len(result.Holdings))
	}

	a := result.Holdings[0]
	want := models.Holding{
		SchemeName: "Fund A", AMC: "AMC A", Category: "Equity", SubCategory: "Large Cap",
		FolioNo: "123", Source: "Direct", Units: 100, InvestedValue: 50000,
		CurrentValue: 70000, Returns: 20000, XIRR: "20%",
	}
	if a != want {
		t.Errorf("Holding A = %+v, expected %+v", a, want)
	}

	b := result.Holdings[1]
	if b.SchemeName != "Fund B" {
		t.Errorf("Expected 'Fund B', got %v", b.SchemeName)
	}
	if b.Units != 0 || b.Returns != 0 {
		t.Errorf("Expected blank numeric cells to be 0, got units=%v returns=%v", b.Units, b.Returns)
	}
	if b.InvestedValue != 50000 {
		t.Errorf("Expected numeric string coerced to 50000, got %v", b.InvestedValue)
	}
	if b.CurrentValue != 50000.5 {
		t.Errorf("Expected 50000.5, got %v", b.CurrentValue)
	}
	if b.XIRR != "5%" {
		t.Errorf("Expected XIRR '5%%', got %v", b.XIRR)
	}
}

func TestExtractReader(t *testing.T) {
	fx := newFixture(t)
	fx.standard()

	var buf bytes.Buffer
	if err := fx.f.Write(&buf); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	result, err := ExtractReader(&buf, "portfolio.xlsx")
	if err != nil {
		t.Fatalf("ExtractReader failed: %v", err)
	}
	if len(result.Holdings) != 2 {
		t.Errorf("Expected 2 holdings, got %d", len(result.Holdings))
	}
}

func TestExtractSummaryCoercion(t *testing.T) {
	fx := newFixture(t)
	fx.details()
	fx.summary("100000", 120000.0)
	fx.holdingsHeader(HoldingsStartRow)

	result, err := Extract(fx.save())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	total, current := result.Summary.TotalInvestments, result.Summary.CurrentValue
	if total == nil || *total != 100000.0 || current == nil || *current != 120000.0 {
		t.Errorf("Unexpected summary: %+v", result.Summary)
	}
}

// TestExtractBlankSummaryTotals uses a workbook written as three two-column
// frames, so only the total investments cell of the summary row is filled.
func TestExtractBlankSummaryTotals(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	frames := []struct {
		cell string
		rows [][]interface{}
	}{
		{"A3", [][]interface{}{
			{"A", "B"},
			{"Name", "John Doe"},
			{"Phone", "1234567890"},
			{"PAN", "ABCDE1234F"},
		}},
		{"A13", [][]interface{}{
			{"A", "B"},
			{"Total Investments", 100000},
			{"Current Value", 120000},
			{"Total Profit/Loss", 20000},
			{"% Profit/Loss", "20%"},
		}},
	}
	holdings := make([]interface{}, len(HoldingColumns))
	for i, c := range HoldingColumns {
		holdings[i] = c
	}
	frames = append(frames, struct {
		cell string
		rows [][]interface{}
	}{"A22", [][]interface{}{
		holdings,
		{"Fund A", "AMC A", "Equity", "Large Cap", "123", "Direct", 100, 50000, 70000, 20000, "20%"},
		{"Fund B", "AMC B", "Debt", "Short Duration", "456", "Regular", 200, 50000, 50000, 0, "5%"},
	}})

	for _, frame := range frames {
		col, row, err := excelize.CellNameToCoordinates(frame.cell)
		if err != nil {
			t.Fatalf("Invalid cell %s: %v", frame.cell, err)
		}
		for i, values := range frame.rows {
			cell, _ := excelize.CoordinatesToCellName(col, row+i)
			if err := f.SetSheetRow("Sheet1", cell, &values); err != nil {
				t.Fatalf("Failed to write row %s: %v", cell, err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "test_portfolio.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	result, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.PersonalDetails.Name != "John Doe" {
		t.Errorf("Expected name John Doe, got %v", result.PersonalDetails.Name)
	}
	summary := result.Summary
	if summary.TotalInvestments == nil || *summary.TotalInvestments != 100000 {
		t.Errorf("Expected total investments 100000, got %v", summary.TotalInvestments)
	}
	if summary.CurrentValue != nil {
		t.Errorf("Expected blank current value, got %v", *summary.CurrentValue)
	}
	if summary.TotalProfitLoss != nil || summary.ProfitLossPercent != nil {
		t.Errorf("Expected blank profit/loss fields, got %+v", summary)
	}
	if len(result.Holdings) != 2 || result.Holdings[1].Units != 200 {
		t.Errorf("Unexpected holdings: %+v", result.Holdings)
	}

	data, err := json.Marshal(result.Summary)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"total_investments":100000,"current_value":null`) {
		t.Errorf("Expected null current value in %s", data)
	}
}

func TestExtractEmptyHoldings(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fx *fixture)
	}{
		{"header only", func(fx *fixture) {
			fx.holdingsHeader(HoldingsStartRow)
		}},
		{"header after blank rows", func(fx *fixture) {
			fx.holdingsHeader(HoldingsStartRow + 4)
		}},
		{"sheet ends before holdings", func(fx *fixture) {
			fx.set(SummaryStartRow, len(HoldingColumns)-1, "Notes")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.details()
			fx.summary(100000, 120000)
			tt.setup(fx)

			result, err := Extract(fx.save())
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if result.Holdings == nil || len(result.Holdings) != 0 {
				t.Errorf("Expected empty non-nil holdings, got %#v", result.Holdings)
			}

			data, err := json.Marshal(result)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if !strings.Contains(string(data), `"holdings":[]`) {
				t.Errorf("Expected empty holdings array in %s", data)
			}
		})
	}
}

func TestExtractHeaderFollowsBlankRows(t *testing.T) {
	fx := newFixture(t)
	fx.details()
	fx.summary(100000, 120000)
	fx.holdingsHeader(HoldingsStartRow + 2)
	fx.setRow(HoldingsStartRow+3, "Fund A", "AMC A", "Equity", "Large Cap", "123", "Direct", 1, 2, 3, 4, "1%")

	result, err := Extract(fx.save())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(result.Holdings) != 1 || result.Holdings[0].SchemeName != "Fund A" {
		t.Errorf("Unexpected holdings: %+v", result.Holdings)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(fx *fixture)
		component string
		target    error
	}{
		{
			name: "non-numeric units",
			setup: func(fx *fixture) {
				fx.standard()
				fx.set(HoldingsStartRow+1, 6, "many")
			},
			component: ComponentHoldings,
			target:    ErrNotNumeric,
		},
		{
			name: "non-numeric total investments",
			setup: func(fx *fixture) {
				fx.standard()
				fx.set(SummaryValueRow, TotalInvestmentsCol, "1,00,000")
			},
			component: ComponentSummary,
			target:    ErrNotNumeric,
		},
		{
			name: "sheet too short for summary",
			setup: func(fx *fixture) {
				fx.details()
			},
			component: ComponentSummary,
			target:    models.ErrOutOfRange,
		},
		{
			name: "header row only",
			setup: func(fx *fixture) {
				fx.f.SetCellValue("Sheet1", "A1", "A")
				fx.f.SetCellValue("Sheet1", "B1", "B")
			},
			component: ComponentPersonalDetails,
			target:    models.ErrOutOfRange,
		},
		{
			name: "extra column",
			setup: func(fx *fixture) {
				fx.standard()
				fx.set(HoldingsStartRow+1, len(HoldingColumns), "extra")
			},
			component: ComponentHoldings,
			target:    ErrColumnCount,
		},
		{
			name:      "empty sheet",
			setup:     func(fx *fixture) {},
			component: ComponentWorkbook,
			target:    ErrEmptySheet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			tt.setup(fx)

			result, err := Extract(fx.save())
			if err == nil {
				t.Fatalf("Expected error, got result %+v", result)
			}

			var extractionErr *ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("Expected *ExtractionError, got %T: %v", err, err)
			}
			if extractionErr.Component != tt.component {
				t.Errorf("Expected component %q, got %q", tt.component, extractionErr.Component)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestExtractReaderInvalidFormat(t *testing.T) {
	_, err := ExtractReader(strings.NewReader("This is not an Excel file."), "invalid_file.txt")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Expected ErrInvalidFormat, got %v", err)
	}

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) || extractionErr.Component != ComponentWorkbook {
		t.Errorf("Expected workbook ExtractionError, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestExtractSheetBlankTextColumns(t *testing.T) {
	sheet := &models.Sheet{Name: "Sheet1", Rows: make([][]interface{}, HoldingsStartRow+2)}
	sheet.Rows[NameRow] = []interface{}{"Name", "Jane"}
	sheet.Rows[PhoneRow] = []interface{}{"Phone", int64(9876543210)}
	sheet.Rows[PANRow] = []interface{}{"PAN", ""}
	sheet.Rows[SummaryValueRow] = []interface{}{nil, 10.5, int64(11), nil, "4.76%"}
	sheet.Rows[HoldingsStartRow] = []interface{}{"h", "h", "h", "h", "h", "h", "h", "h", "h", "h", "h"}
	sheet.Rows[HoldingsStartRow+1] = []interface{}{"Fund C", nil, "", nil, int64(789), nil, true, 1.5, "2", nil}

	result, err := ExtractSheet(sheet)
	if err != nil {
		t.Fatalf("ExtractSheet failed: %v", err)
	}

	if result.PersonalDetails.Phone != int64(9876543210) {
		t.Errorf("Expected phone kept verbatim, got %v (type: %T)", result.PersonalDetails.Phone, result.PersonalDetails.Phone)
	}
	if result.Summary.TotalProfitLoss != nil {
		t.Errorf("Expected nil total profit/loss, got %v", result.Summary.TotalProfitLoss)
	}

	h := result.Holdings[0]
	for name, v := range map[string]interface{}{
		ColAMC: h.AMC, ColCategory: h.Category, ColSubCategory: h.SubCategory,
		ColSource: h.Source, ColXIRR: h.XIRR,
	} {
		if v != int64(0) {
			t.Errorf("Expected %s to be 0, got %v (type: %T)", name, v, v)
		}
	}
	if h.FolioNo != int64(789) {
		t.Errorf("Expected numeric folio kept, got %v", h.FolioNo)
	}
	if h.Units != 1 || h.InvestedValue != 1.5 || h.CurrentValue != 2 || h.Returns != 0 {
		t.Errorf("Unexpected numeric columns: %+v", h)
	}
}

// TestExtractSheetErrorCells covers formula error cells, which the
// workbook reader turns into blanks.
func TestExtractSheetErrorCells(t *testing.T) {
	sheet := &models.Sheet{Name: "Sheet1", Rows: make([][]interface{}, HoldingsStartRow+2)}
	sheet.Rows[NameRow] = []interface{}{"Name", "Jane"}
	sheet.Rows[PhoneRow] = []interface{}{"Phone", "9876543210"}
	sheet.Rows[PANRow] = []interface{}{"PAN", "ABCDE1234F"}
	sheet.Rows[SummaryValueRow] = []interface{}{nil, int64(100), nil}
	sheet.Rows[HoldingsStartRow] = []interface{}{"h", "h", "h", "h", "h", "h", "h", "h", "h", "h", "h"}
	sheet.Rows[HoldingsStartRow+1] = []interface{}{
		"Fund D", "AMC D", "Equity", "Mid Cap", "42", "Direct",
		parser.CellValue(excelize.CellTypeError, "#N/A"), int64(1000), int64(1200), int64(200),
		parser.CellValue(excelize.CellTypeError, "#DIV/0!"),
	}

	result, err := ExtractSheet(sheet)
	if err != nil {
		t.Fatalf("ExtractSheet failed: %v", err)
	}
	h := result.Holdings[0]
	if h.Units != 0 {
		t.Errorf("Expected units 0, got %v", h.Units)
	}
	if h.XIRR != int64(0) {
		t.Errorf("Expected XIRR 0, got %v (type: %T)", h.XIRR, h.XIRR)
	}
	if h.Returns != 200 {
		t.Errorf("Expected returns 200, got %v", h.Returns)
	}
}

func TestToOptionalFloat(t *testing.T) {
	for _, blank := range []interface{}{nil, ""} {
		if v, err := toOptionalFloat(blank); v != nil || err != nil {
			t.Errorf("toOptionalFloat(%#v) = %v, %v, expected nil", blank, v, err)
		}
	}
	if v, err := toOptionalFloat("120000.5"); err != nil || v == nil || *v != 120000.5 {
		t.Errorf("toOptionalFloat(\"120000.5\") = %v, %v", v, err)
	}
	if _, err := toOptionalFloat("n/a"); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("Expected ErrNotNumeric, got %v", err)
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected float64
		wantErr  bool
	}{
		{int64(100000), 100000, false},
		{120000.5, 120000.5, false},
		{"100000", 100000, false},
		{" 12.5 ", 12.5, false},
		{"1e5", 100000, false},
		{true, 1, false},
		{false, 0, false},
		{nil, 0, true},
		{"", 0, true},
		{"20%", 0, true},
		{"1,000", 0, true},
		{"NaN", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		result, err := toFloat(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrNotNumeric) {
				t.Errorf("toFloat(%#v) error = %v, expected ErrNotNumeric", tt.input, err)
			}
			continue
		}
		if err != nil || result != tt.expected {
			t.Errorf("toFloat(%#v) = %v, %v, expected %v", tt.input, result, err, tt.expected)
		}
	}
}
