// Package pfstruct extracts portfolio statements from Excel workbooks.
//
// The workbook layout is fixed: every block is located by row and column
// offset, never by header text. Row offsets index the sheet grid, whose row 0
// is the worksheet row following the frame header (see parser.HeaderRows).
package pfstruct

// Personal details block.
const (
	DetailsStartRow = 1
	NameRow         = DetailsStartRow + 1
	PhoneRow        = DetailsStartRow + 2
	PANRow          = DetailsStartRow + 3
	DetailsValueCol = 1
)

// Summary block. All values sit on the row after SummaryStartRow.
const (
	SummaryStartRow      = 11
	SummaryValueRow      = SummaryStartRow + 1
	TotalInvestmentsCol  = 1
	CurrentValueCol      = 2
	TotalProfitLossCol   = 3
	ProfitLossPercentCol = 4
)

// HoldingsStartRow is the first row of the holdings block, which runs to the
// end of the sheet. Its first non-empty row is the original header.
const HoldingsStartRow = 20

// Holdings column labels, applied by position.
const (
	ColSchemeName    = "Scheme Name"
	ColAMC           = "AMC"
	ColCategory      = "Category"
	ColSubCategory   = "Sub-category"
	ColFolioNo       = "Folio No."
	ColSource        = "Source"
	ColUnits         = "Units"
	ColInvestedValue = "Invested Value"
	ColCurrentValue  = "Current Value"
	ColReturns       = "Returns"
	ColXIRR          = "XIRR"
)

// HoldingColumns is the fixed holdings column sequence. Whatever header text
// the sheet carries is ignored.
var HoldingColumns = []string{
	ColSchemeName, ColAMC, ColCategory, ColSubCategory, ColFolioNo, ColSource,
	ColUnits, ColInvestedValue, ColCurrentValue, ColReturns, ColXIRR,
}

// NumericHoldingColumns are coerced to float.
var NumericHoldingColumns = []string{
	ColUnits, ColInvestedValue, ColCurrentValue, ColReturns,
}
