package persistence

import (
	"context"
	"errors"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/contafacil/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementRepository implements ledger.MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByID finds a movement by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Movement, error) {
	var model models.MovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds movements matching the filter, ordered by settled date ascending
func (r *GormMovementRepository) FindAll(ctx context.Context, filter ledger.MovementFilter) ([]ledger.Movement, error) {
	var movementModels []models.MovementModel
	query := r.db.WithContext(ctx).Model(&models.MovementModel{})
	query = r.applyFilter(query, filter)

	if err := query.Order("settled_on ASC, created_at ASC").Find(&movementModels).Error; err != nil {
		return nil, err
	}

	movements := make([]ledger.Movement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements, nil
}

// Save creates or updates a movement
func (r *GormMovementRepository) Save(ctx context.Context, movement *ledger.Movement) error {
	model := models.MovementModelFromDomain(movement)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete hard-deletes a movement
func (r *GormMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MovementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByAccount counts movements referencing the account on either side
func (r *GormMovementRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MovementModel{}).
		Where("account_id = ? OR origin_id = ?", accountID, accountID).
		Count(&count).Error
	return count, err
}

// applyFilter applies equality and range predicates from the filter
func (r *GormMovementRepository) applyFilter(query *gorm.DB, filter ledger.MovementFilter) *gorm.DB {
	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ? OR origin_id = ?", *filter.AccountID, *filter.AccountID)
	}
	if filter.From != nil {
		query = query.Where("settled_on >= ?", filter.From.String())
	}
	if filter.To != nil {
		query = query.Where("settled_on <= ?", filter.To.String())
	}
	return query
}
