// Package models defines the core domain models for the inventory and
// job-costing engine: the material catalog, per-company overrides, jobs and
// their locked ledger lines, and job templates.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a product family (e.g. "epoxy coating"). Variants reference it
// for their unit of measure; it is never hard-deleted once referenced.
type Material struct {
	// ID is the unique identifier for the material.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Name is the material family name, unique across the catalog.
	Name string `gorm:"size:120;not null;uniqueIndex"`
	// Unit is the unit of measure (gallon, lb, sqft) copied onto ledger
	// lines at job creation.
	Unit string `gorm:"size:32;not null"`
	// IsActive marks soft deactivation; inactive materials are excluded
	// from new job creation.
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaterialVariant is a concrete purchasable SKU of a Material. Regular and
// preferred prices are set independently; neither is derived from the other.
type MaterialVariant struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// MaterialID links the variant to its parent family.
	MaterialID uuid.UUID `gorm:"type:uuid;index;not null"`
	Material   *Material `gorm:"foreignKey:MaterialID"`
	// Name is the display name of the SKU.
	Name string `gorm:"size:120;not null"`
	// VariantType classifies the variant for template composition checks
	// (e.g. "base coat", "top coat", "broadcast").
	VariantType string `gorm:"size:64;index"`
	// Color is an optional classifier.
	Color string `gorm:"size:64"`
	// RegularPrice is the list price for standard-tier companies.
	RegularPrice decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	// PreferredPrice is the list price for preferred-tier companies.
	PreferredPrice decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	// CoverageRate is the area/volume one unit covers.
	CoverageRate decimal.Decimal `gorm:"type:decimal(20,4)"`
	// DefaultOverageRate is the catalog overage rate applied when a company
	// has no per-variant override.
	DefaultOverageRate decimal.Decimal `gorm:"type:decimal(20,4)"`
	// IsActive marks soft deletion. Inactive variants are excluded from new
	// jobs but remain referenced by historical ledger lines.
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VariantUpdate represents the fields that can be updated for a variant.
// Pointer types are used to allow partial updates.
type VariantUpdate struct {
	ID                 uuid.UUID
	Name               *string
	Color              *string
	RegularPrice       *decimal.Decimal
	PreferredPrice     *decimal.Decimal
	CoverageRate       *decimal.Decimal
	DefaultOverageRate *decimal.Decimal
}
