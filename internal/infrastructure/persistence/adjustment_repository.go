package persistence

import (
	"context"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAdjustmentRepository implements ledger.AdjustmentRepository using GORM.
// Adjustments are append-only; the repository exposes no update or delete.
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindAll finds adjustments matching the filter, ordered by date ascending
func (r *GormAdjustmentRepository) FindAll(ctx context.Context, filter ledger.AdjustmentFilter) ([]ledger.Adjustment, error) {
	var adjustmentModels []models.AdjustmentModel
	query := r.db.WithContext(ctx).Model(&models.AdjustmentModel{})

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.From != nil {
		query = query.Where("adjusted_on >= ?", filter.From.String())
	}
	if filter.To != nil {
		query = query.Where("adjusted_on <= ?", filter.To.String())
	}

	if err := query.Order("adjusted_on ASC, created_at ASC").Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}

	adjustments := make([]ledger.Adjustment, len(adjustmentModels))
	for i, model := range adjustmentModels {
		adjustments[i] = *model.ToDomain()
	}
	return adjustments, nil
}

// Save inserts a new adjustment
func (r *GormAdjustmentRepository) Save(ctx context.Context, adjustment *ledger.Adjustment) error {
	model := models.AdjustmentModelFromDomain(adjustment)
	return r.db.WithContext(ctx).Create(model).Error
}
