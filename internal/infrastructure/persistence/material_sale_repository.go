package persistence

import (
	"context"

	"github.com/fieldops/backend/internal/domain/profitability"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMaterialSaleRepository implements profitability.MaterialSaleRepository using GORM
type GormMaterialSaleRepository struct {
	db *gorm.DB
}

// NewGormMaterialSaleRepository creates a new GormMaterialSaleRepository
func NewGormMaterialSaleRepository(db *gorm.DB) *GormMaterialSaleRepository {
	return &GormMaterialSaleRepository{db: db}
}

type materialSaleRow struct {
	VisitID     uuid.UUID
	CustomerID  uuid.UUID
	BranchID    *uuid.UUID
	TotalAmount decimal.Decimal
}

// ListForPeriod returns material sales whose visit falls inside the
// inclusive window. Sales are dated by their visit, so the same join drives
// the period and operator filters.
func (r *GormMaterialSaleRepository) ListForPeriod(ctx context.Context, filter profitability.ReportFilter) ([]profitability.MaterialSale, error) {
	query := r.db.WithContext(ctx).
		Table("material_sales AS s").
		Select("s.visit_id, s.customer_id, s.branch_id, s.total_amount").
		Joins("JOIN visits v ON v.id = s.visit_id").
		Where("v.visit_date >= ? AND v.visit_date < ?", filter.StartDate, filter.EndDate.AddDate(0, 0, 1))

	if filter.OperatorID != nil {
		query = query.Where("v.operator_id = ?", *filter.OperatorID)
	}

	var rows []materialSaleRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]profitability.MaterialSale, len(rows))
	for i, row := range rows {
		sales[i] = profitability.MaterialSale{
			VisitID:     row.VisitID,
			CustomerID:  row.CustomerID,
			BranchID:    row.BranchID,
			TotalAmount: row.TotalAmount,
		}
	}
	return sales, nil
}
