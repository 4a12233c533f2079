package persistence

import (
	"context"
	"time"

	"github.com/fieldops/backend/internal/domain/profitability"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVisitRepository implements profitability.VisitRepository using GORM
type GormVisitRepository struct {
	db *gorm.DB
}

// NewGormVisitRepository creates a new GormVisitRepository
func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// visitRow is the flat projection of a visit joined with its operator,
// customer and optional branch.
type visitRow struct {
	ID              uuid.UUID
	VisitDate       time.Time
	Status          string
	OperatorID      uuid.UUID
	OperatorName    string
	CustomerID      uuid.UUID
	CustomerName    string
	BranchID        *uuid.UUID
	BranchName      *string
	BranchLatitude  *float64
	BranchLongitude *float64
}

// ListForPeriod returns every visit whose date falls inside the inclusive
// window, joined with the names and coordinates the report needs. Status
// filtering is left to the domain: the monthly distributor and the
// aggregator apply their own rules.
func (r *GormVisitRepository) ListForPeriod(ctx context.Context, filter profitability.ReportFilter) ([]profitability.Visit, error) {
	query := r.db.WithContext(ctx).
		Table("visits AS v").
		Select(`v.id, v.visit_date, v.status,
			v.operator_id, o.name AS operator_name,
			v.customer_id, c.name AS customer_name,
			v.branch_id, b.name AS branch_name,
			b.latitude AS branch_latitude, b.longitude AS branch_longitude`).
		Joins("LEFT JOIN operators o ON o.id = v.operator_id").
		Joins("LEFT JOIN customers c ON c.id = v.customer_id").
		Joins("LEFT JOIN branches b ON b.id = v.branch_id").
		Where("v.visit_date >= ? AND v.visit_date < ?", filter.StartDate, filter.EndDate.AddDate(0, 0, 1)).
		Order("v.visit_date ASC")

	if filter.OperatorID != nil {
		query = query.Where("v.operator_id = ?", *filter.OperatorID)
	}

	var rows []visitRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	visits := make([]profitability.Visit, len(rows))
	for i, row := range rows {
		visits[i] = row.toDomain()
	}
	return visits, nil
}

func (row visitRow) toDomain() profitability.Visit {
	v := profitability.Visit{
		ID:              row.ID,
		VisitDate:       row.VisitDate,
		Status:          profitability.VisitStatus(row.Status),
		OperatorID:      row.OperatorID,
		OperatorName:    row.OperatorName,
		CustomerID:      row.CustomerID,
		CustomerName:    row.CustomerName,
		BranchID:        row.BranchID,
		BranchLatitude:  row.BranchLatitude,
		BranchLongitude: row.BranchLongitude,
	}
	if row.BranchName != nil {
		v.BranchName = *row.BranchName
	}
	return v
}
