package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"gorm.io/gorm"
)

func (r *Repository) CreateMaterial(ctx context.Context, material *models.Material) error {
	result := r.db.WithContext(ctx).Create(material)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrConflict
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	var material models.Material
	result := r.db.WithContext(ctx).First(&material, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &material, nil
}

func (r *Repository) CreateVariant(ctx context.Context, variant *models.MaterialVariant) error {
	result := r.db.WithContext(ctx).Create(variant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrConflict
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetVariant(ctx context.Context, id uuid.UUID) (*models.MaterialVariant, error) {
	var variant models.MaterialVariant
	result := r.db.WithContext(ctx).Preload("Material").First(&variant, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &variant, nil
}

// GetVariantsByIDs returns the variants for the given ids with their parent
// materials preloaded. Missing ids are simply absent from the result; the
// caller decides whether that is an error.
func (r *Repository) GetVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MaterialVariant, error) {
	var variants []models.MaterialVariant
	result := r.db.WithContext(ctx).Preload("Material").
		Where("id IN ?", ids).
		Find(&variants)
	if result.Error != nil {
		return nil, result.Error
	}
	return variants, nil
}

// ListActiveVariants returns active variants of active materials, ordered by
// id for stable pagination.
func (r *Repository) ListActiveVariants(ctx context.Context) ([]models.MaterialVariant, error) {
	var variants []models.MaterialVariant
	result := r.db.WithContext(ctx).Preload("Material").
		Joins("JOIN materials ON materials.id = material_variants.material_id").
		Where("material_variants.is_active = ? AND materials.is_active = ?", true, true).
		Order("material_variants.id").
		Find(&variants)
	if result.Error != nil {
		return nil, result.Error
	}
	return variants, nil
}

func (r *Repository) UpdateVariant(ctx context.Context, update *models.VariantUpdate) error {
	result := r.db.WithContext(ctx).Model(&models.MaterialVariant{}).
		Where("id = ?", update.ID).
		Updates(update)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// DeactivateVariant soft-deletes a variant. Historical ledger lines keep
// referencing it.
func (r *Repository) DeactivateVariant(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.MaterialVariant{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}
