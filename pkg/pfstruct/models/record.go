package models

import (
	"database/sql"
	"time"
)

// SummaryRecord is the persisted form of a portfolio summary. Blank totals
// are stored as NULL.
type SummaryRecord struct {
	Name             string
	PAN              string
	TotalInvestments sql.NullFloat64
	CurrentValue     sql.NullFloat64
	CreatedAt        time.Time
}

// HoldingRecord is the persisted form of a single holding.
type HoldingRecord struct {
	SchemeName string
	Units      float64
	Invested   float64
	Current    float64
	Returns    float64
}
