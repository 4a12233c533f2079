package models

import "github.com/google/uuid"

// CustomerModel is the persistence model for a serviced customer.
type CustomerModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(50);index"`
	Email   string `gorm:"type:varchar(200);index"`
	Address string `gorm:"type:text"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// BranchModel is the persistence model for a customer branch location.
// Coordinates are optional; branches registered before geocoding was
// introduced carry NULLs.
type BranchModel struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
	Address    string    `gorm:"type:text"`
	Latitude   *float64  `gorm:"type:double precision"`
	Longitude  *float64  `gorm:"type:double precision"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// OperatorModel is the persistence model for a field operator.
type OperatorModel struct {
	BaseModel
	Name   string `gorm:"type:varchar(200);not null"`
	Phone  string `gorm:"type:varchar(50)"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (OperatorModel) TableName() string {
	return "operators"
}
