package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VisitModel is the persistence model for a scheduled service visit.
type VisitModel struct {
	BaseModel
	VisitDate  time.Time  `gorm:"type:date;not null;index"`
	Status     string     `gorm:"type:varchar(20);not null;default:'planned';index"`
	OperatorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	BranchID   *uuid.UUID `gorm:"type:uuid;index"`
	Notes      string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VisitModel) TableName() string {
	return "visits"
}

// MaterialSaleModel is the persistence model for a material sale billed
// during a visit.
type MaterialSaleModel struct {
	BaseModel
	VisitID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID    *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500)"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (MaterialSaleModel) TableName() string {
	return "material_sales"
}
