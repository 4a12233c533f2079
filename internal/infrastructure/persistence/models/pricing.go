package models

import (
	"github.com/fieldops/backend/internal/domain/profitability"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingRecordModel is the persistence model for a pricing agreement. A
// record is attached to exactly one customer or one branch; a CHECK
// constraint in the schema enforces this.
type PricingRecordModel struct {
	BaseModel
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index"`
	BranchID      *uuid.UUID       `gorm:"type:uuid;index"`
	MonthlyPrice  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	PerVisitPrice *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (PricingRecordModel) TableName() string {
	return "pricing_records"
}

// ToDomain converts the persistence model to the domain pricing record.
func (m *PricingRecordModel) ToDomain() profitability.PricingRecord {
	return profitability.PricingRecord{
		CustomerID:    m.CustomerID,
		BranchID:      m.BranchID,
		MonthlyPrice:  m.MonthlyPrice,
		PerVisitPrice: m.PerVisitPrice,
	}
}
