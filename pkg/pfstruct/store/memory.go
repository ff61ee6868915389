package store

import (
	"context"
	"sync"

	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
)

// Memory keeps records in process memory.
type Memory struct {
	mu        sync.Mutex
	summaries []models.SummaryRecord
	holdings  []models.HoldingRecord
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{}
}

// SaveSummary appends a summary record.
func (m *Memory) SaveSummary(_ context.Context, rec models.SummaryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = append(m.summaries, rec)
	return nil
}

// SaveHolding appends a holding record.
func (m *Memory) SaveHolding(_ context.Context, rec models.HoldingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holdings = append(m.holdings, rec)
	return nil
}

// Summaries returns a copy of the stored summary records.
func (m *Memory) Summaries() []models.SummaryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.SummaryRecord(nil), m.summaries...)
}

// Holdings returns a copy of the stored holding records.
func (m *Memory) Holdings() []models.HoldingRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.HoldingRecord(nil), m.holdings...)
}
