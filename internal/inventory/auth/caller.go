// Package auth provides the resolved caller identity, JWT token handling,
// and the capability check gating every core operation.
package auth

import (
	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/models"
)

// Caller is the resolved identity a request acts under. CompanyID is nil for
// platform operators. The pricing tier is never carried here; it is
// re-derived from the Company record so stale claims cannot change pricing.
type Caller struct {
	UserID    string
	CompanyID *uuid.UUID
	Role      models.Role
}

// IsOperator reports whether the caller is a platform operator.
func (c Caller) IsOperator() bool {
	return c.Role == models.RoleOperator && c.CompanyID == nil
}
