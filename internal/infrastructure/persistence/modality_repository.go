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

// GormModalityRepository implements ledger.ModalityRepository using GORM
type GormModalityRepository struct {
	db *gorm.DB
}

// NewGormModalityRepository creates a new GormModalityRepository
func NewGormModalityRepository(db *gorm.DB) *GormModalityRepository {
	return &GormModalityRepository{db: db}
}

// FindByID finds a modality by its ID
func (r *GormModalityRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Modality, error) {
	var model models.ModalityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a modality by exact name, case-insensitively
func (r *GormModalityRepository) FindByName(ctx context.Context, name string) (*ledger.Modality, error) {
	var model models.ModalityModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownModality
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every registered modality
func (r *GormModalityRepository) FindAll(ctx context.Context) ([]ledger.Modality, error) {
	var modalityModels []models.ModalityModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&modalityModels).Error; err != nil {
		return nil, err
	}

	modalities := make([]ledger.Modality, len(modalityModels))
	for i, model := range modalityModels {
		modalities[i] = *model.ToDomain()
	}
	return modalities, nil
}

// Save creates or updates a modality
func (r *GormModalityRepository) Save(ctx context.Context, modality *ledger.Modality) error {
	model := models.ModalityModelFromDomain(modality)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a modality
func (r *GormModalityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ModalityModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
