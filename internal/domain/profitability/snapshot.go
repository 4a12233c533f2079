package profitability

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is a persisted copy of one report run, saved on explicit user
// request. The live report is always recomputed; a snapshot is a historical
// record, never an input to later runs.
type Snapshot struct {
	ID           uuid.UUID       `json:"id"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	OperatorID   *uuid.UUID      `json:"operator_id,omitempty"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	Report       *Report         `json:"report"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewSnapshot captures the headline figures alongside the full report so
// listings never need to deserialize the report payload.
func NewSnapshot(report *Report) *Snapshot {
	return &Snapshot{
		ID:           uuid.New(),
		PeriodStart:  report.PeriodStart,
		PeriodEnd:    report.PeriodEnd,
		OperatorID:   report.OperatorID,
		TotalRevenue: report.Summary.TotalRevenue,
		TotalCost:    report.Summary.TotalCost,
		NetProfit:    report.Summary.NetProfit,
		Report:       report,
		CreatedAt:    time.Now().UTC(),
	}
}
