package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"gorm.io/gorm"
)

func (r *Repository) CreateTemplate(ctx context.Context, template *models.JobTemplate) error {
	result := r.db.WithContext(ctx).Create(template)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrConflict
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetTemplate(ctx context.Context, id uuid.UUID) (*models.JobTemplate, error) {
	var template models.JobTemplate
	result := r.db.WithContext(ctx).Preload("Requirements").First(&template, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}
