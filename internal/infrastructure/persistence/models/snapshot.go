package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldops/backend/internal/domain/profitability"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SnapshotModel is the persistence model for a saved profitability report.
// The headline figures are stored as columns so listings never touch the
// report payload; the full report is a jsonb document.
type SnapshotModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	PeriodStart  time.Time       `gorm:"type:date;not null;index"`
	PeriodEnd    time.Time       `gorm:"type:date;not null"`
	OperatorID   *uuid.UUID      `gorm:"type:uuid;index"`
	TotalRevenue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetProfit    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Report       []byte          `gorm:"type:jsonb"`
	CreatedAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SnapshotModel) TableName() string {
	return "profitability_snapshots"
}

// FromDomain populates the model from a domain snapshot, serializing the
// report payload.
func (m *SnapshotModel) FromDomain(s *profitability.Snapshot) error {
	payload, err := json.Marshal(s.Report)
	if err != nil {
		return fmt.Errorf("failed to serialize report payload: %w", err)
	}
	m.ID = s.ID
	m.PeriodStart = s.PeriodStart
	m.PeriodEnd = s.PeriodEnd
	m.OperatorID = s.OperatorID
	m.TotalRevenue = s.TotalRevenue
	m.TotalCost = s.TotalCost
	m.NetProfit = s.NetProfit
	m.Report = payload
	m.CreatedAt = s.CreatedAt
	return nil
}

// ToDomain converts the persistence model to a domain snapshot. When
// includeReport is false the payload is left nil, which listing paths use
// to stay cheap.
func (m *SnapshotModel) ToDomain(includeReport bool) (*profitability.Snapshot, error) {
	snapshot := &profitability.Snapshot{
		ID:           m.ID,
		PeriodStart:  m.PeriodStart,
		PeriodEnd:    m.PeriodEnd,
		OperatorID:   m.OperatorID,
		TotalRevenue: m.TotalRevenue,
		TotalCost:    m.TotalCost,
		NetProfit:    m.NetProfit,
		CreatedAt:    m.CreatedAt,
	}
	if includeReport && len(m.Report) > 0 {
		var report profitability.Report
		if err := json.Unmarshal(m.Report, &report); err != nil {
			return nil, fmt.Errorf("failed to deserialize report payload: %w", err)
		}
		snapshot.Report = &report
	}
	return snapshot, nil
}
