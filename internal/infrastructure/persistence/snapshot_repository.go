package persistence

import (
	"context"
	"errors"

	"github.com/fieldops/backend/internal/domain/profitability"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSnapshotRepository implements profitability.SnapshotRepository using GORM
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GormSnapshotRepository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Save persists one report snapshot.
func (r *GormSnapshotRepository) Save(ctx context.Context, snapshot *profitability.Snapshot) error {
	var model models.SnapshotModel
	if err := model.FromDomain(snapshot); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID returns one snapshot including its full report payload.
func (r *GormSnapshotRepository) FindByID(ctx context.Context, id uuid.UUID) (*profitability.Snapshot, error) {
	var model models.SnapshotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(true)
}

// List returns the newest snapshots without their report payloads.
func (r *GormSnapshotRepository) List(ctx context.Context, limit int) ([]profitability.Snapshot, error) {
	var snapshotModels []models.SnapshotModel
	if err := r.db.WithContext(ctx).
		Select("id, period_start, period_end, operator_id, total_revenue, total_cost, net_profit, created_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&snapshotModels).Error; err != nil {
		return nil, err
	}

	snapshots := make([]profitability.Snapshot, len(snapshotModels))
	for i, model := range snapshotModels {
		snapshot, err := model.ToDomain(false)
		if err != nil {
			return nil, err
		}
		snapshots[i] = *snapshot
	}
	return snapshots, nil
}
