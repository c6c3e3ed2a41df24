package models

import (
	"time"

	"github.com/google/uuid"
)

// JobTemplate names a required variant-type composition for a job, e.g.
// "standard" = one base coat, one top coat, one broadcast.
type JobTemplate struct {
	ID           uuid.UUID                `gorm:"type:uuid;primaryKey"`
	Name         string                   `gorm:"size:64;not null;uniqueIndex"`
	IsActive     bool                     `gorm:"not null;default:true"`
	Requirements []JobTemplateRequirement `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JobTemplateRequirement is one (variant type, count) rule of a template.
type JobTemplateRequirement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TemplateID  uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantType string    `gorm:"size:64;not null"`
	Count       int       `gorm:"not null"`
}
