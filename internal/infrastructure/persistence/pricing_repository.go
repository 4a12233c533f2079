package persistence

import (
	"context"

	"github.com/fieldops/backend/internal/domain/profitability"
	"github.com/fieldops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPricingRepository implements profitability.PricingRepository using GORM
type GormPricingRepository struct {
	db *gorm.DB
}

// NewGormPricingRepository creates a new GormPricingRepository
func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// ListAll returns every pricing record. The pricing table is master data
// and small; the resolver indexes it in memory per report run.
func (r *GormPricingRepository) ListAll(ctx context.Context) ([]profitability.PricingRecord, error) {
	var recordModels []models.PricingRecordModel
	if err := r.db.WithContext(ctx).Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]profitability.PricingRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = model.ToDomain()
	}
	return records, nil
}
