package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the position a user holds within a company, or the platform role
// for operators with no company context.
type Role string

const (
	// RoleOperator is a platform operator; CompanyID is nil for operators.
	RoleOperator Role = "OPERATOR"
	// RoleAdmin is a company administrator.
	RoleAdmin Role = "ADMIN"
	// RoleProduction is a production manager.
	RoleProduction Role = "PRODUCTION"
	// RoleStaff is a regular company user.
	RoleStaff Role = "STAFF"
)

// Company is a tenant. PreferredPricing is the single binary pricing-tier
// switch: it selects which catalog price the company sees and which price is
// locked into new jobs. There is no per-product granularity.
type Company struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:120;not null;uniqueIndex"`
	// PreferredPricing grants the preferred catalog price tier.
	PreferredPricing bool `gorm:"not null;default:false"`
	IsActive         bool `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CompanyUpdate represents the fields that can be updated for a Company.
type CompanyUpdate struct {
	ID               uuid.UUID
	Name             *string
	PreferredPricing *bool
}
