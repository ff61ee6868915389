package models

// PersonalDetails holds the investor block, copied verbatim from the sheet.
type PersonalDetails struct {
	Name  interface{} `json:"name"`
	Phone interface{} `json:"phone"`
	PAN   interface{} `json:"pan"`
}

// Summary holds the portfolio totals.
type Summary struct {
	// TotalInvestments is the invested amount; nil when the cell is blank.
	TotalInvestments *float64 `json:"total_investments"`
	// CurrentValue is the market value; nil when the cell is blank.
	CurrentValue *float64 `json:"current_value"`
	// TotalProfitLoss is passed through as found (number or string).
	TotalProfitLoss interface{} `json:"total_profit_loss"`
	// ProfitLossPercent is passed through as found, commonly a string like "20%".
	ProfitLossPercent interface{} `json:"profit_loss_percent"`
}

// Float returns a pointer to v, for building summary totals.
func Float(v float64) *float64 {
	return &v
}

// Holding represents one fund holding row.
//
// JSON keys are the fixed holdings column labels. Text columns keep the
// raw cell value; blank cells in any column become 0.
type Holding struct {
	SchemeName    interface{} `json:"Scheme Name"`
	AMC           interface{} `json:"AMC"`
	Category      interface{} `json:"Category"`
	SubCategory   interface{} `json:"Sub-category"`
	FolioNo       interface{} `json:"Folio No."`
	Source        interface{} `json:"Source"`
	Units         float64     `json:"Units"`
	InvestedValue float64     `json:"Invested Value"`
	CurrentValue  float64     `json:"Current Value"`
	Returns       float64     `json:"Returns"`
	XIRR          interface{} `json:"XIRR"`
}

// Result is the structured record extracted from a portfolio workbook.
type Result struct {
	PersonalDetails PersonalDetails `json:"personal_details"`
	Summary         Summary         `json:"summary"`
	// Holdings is never nil; it is empty when the sheet lists no holdings.
	Holdings []Holding `json:"holdings"`
}
