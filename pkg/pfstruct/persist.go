package pfstruct

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
)

// IST is the fixed-offset zone (UTC+05:30) used for persisted timestamps.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// Repository stores extracted portfolios.
type Repository interface {
	SaveSummary(ctx context.Context, rec models.SummaryRecord) error
	SaveHolding(ctx context.Context, rec models.HoldingRecord) error
}

// Persist writes one holding record per holding and then one summary record
// stamped with at. It does nothing unless persist is true. Records already
// written are not rolled back when a later write fails.
func Persist(ctx context.Context, repo Repository, result *models.Result, persist bool, at time.Time) error {
	if !persist {
		return nil
	}

	for i, h := range result.Holdings {
		if err := repo.SaveHolding(ctx, HoldingRecord(h)); err != nil {
			return fmt.Errorf("save holding %d: %w", i, err)
		}
	}

	if err := repo.SaveSummary(ctx, SummaryRecord(result, at)); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

// SummaryRecord builds the persisted summary of result.
func SummaryRecord(result *models.Result, at time.Time) models.SummaryRecord {
	return models.SummaryRecord{
		Name:             cellText(result.PersonalDetails.Name),
		PAN:              cellText(result.PersonalDetails.PAN),
		TotalInvestments: nullFloat(result.Summary.TotalInvestments),
		CurrentValue:     nullFloat(result.Summary.CurrentValue),
		CreatedAt:        at,
	}
}

// HoldingRecord builds the persisted form of a holding.
func HoldingRecord(h models.Holding) models.HoldingRecord {
	return models.HoldingRecord{
		SchemeName: cellText(h.SchemeName),
		Units:      h.Units,
		Invested:   h.InvestedValue,
		Current:    h.CurrentValue,
		Returns:    h.Returns,
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// cellText renders a raw cell value as text.
func cellText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
