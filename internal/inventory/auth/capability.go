package auth

import (
	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/models"
)

// Action names a core operation subject to the capability check.
type Action string

const (
	ActionReadCatalog   Action = "catalog:read"
	ActionWriteCatalog  Action = "catalog:write"
	ActionCreateJob     Action = "job:create"
	ActionReadJob       Action = "job:read"
	ActionReplaceLines  Action = "job:replace_lines"
	ActionChangeStatus  Action = "job:change_status"
	ActionProject       Action = "projection:read"
	ActionWriteOverride Action = "override:write"
	ActionManageCompany Action = "company:manage"
)

// actionRoles lists the company roles allowed to perform each action against
// their own company. Operators bypass this table entirely.
var actionRoles = map[Action][]models.Role{
	ActionReadCatalog:   {models.RoleAdmin, models.RoleProduction, models.RoleStaff},
	ActionCreateJob:     {models.RoleAdmin, models.RoleProduction},
	ActionReadJob:       {models.RoleAdmin, models.RoleProduction, models.RoleStaff},
	ActionReplaceLines:  {models.RoleAdmin, models.RoleProduction},
	ActionChangeStatus:  {models.RoleAdmin, models.RoleProduction},
	ActionProject:       {models.RoleAdmin, models.RoleProduction, models.RoleStaff},
	ActionWriteOverride: {models.RoleAdmin, models.RoleProduction},
	// Catalog and company management are platform-operator operations; no
	// company role appears here.
	ActionWriteCatalog:  {},
	ActionManageCompany: {},
}

// CanPerform is the single capability check for the engine: it decides
// whether the caller may perform action against a resource owned by
// ownerCompanyID (uuid.Nil for company-agnostic resources such as the
// catalog). Operators may do anything; company users need a matching company
// and a role listed for the action.
func CanPerform(caller Caller, action Action, ownerCompanyID uuid.UUID) bool {
	if caller.IsOperator() {
		return true
	}
	if caller.CompanyID == nil {
		return false
	}
	if ownerCompanyID != uuid.Nil && *caller.CompanyID != ownerCompanyID {
		return false
	}
	for _, role := range actionRoles[action] {
		if caller.Role == role {
			return true
		}
	}
	return false
}
