package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverageOverride is a per-(company, variant) exception to the variant's
// default overage rate. At most one row exists per pair; writes are upserts
// with last-writer-wins semantics under the unique index.
type OverageOverride struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_overage_company_variant"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_overage_company_variant"`
	Rate      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuantityOverride is the company's self-declared on-hand quantity for a
// variant. It is an operator-entered snapshot, not a running balance; job
// consumption never decrements it.
type QuantityOverride struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_quantity_company_variant"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_quantity_company_variant"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
