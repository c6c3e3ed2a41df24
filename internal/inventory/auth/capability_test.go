package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/resinworks/jobstock/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestCanPerform(t *testing.T) {
	companyA := uuid.New()
	companyB := uuid.New()

	tests := []struct {
		name    string
		caller  Caller
		action  Action
		ownerID uuid.UUID
		want    bool
	}{
		{
			name:    "operator can write catalog",
			caller:  Caller{UserID: "op", Role: models.RoleOperator},
			action:  ActionWriteCatalog,
			ownerID: uuid.Nil,
			want:    true,
		},
		{
			name:    "operator can read any company's jobs",
			caller:  Caller{UserID: "op", Role: models.RoleOperator},
			action:  ActionReadJob,
			ownerID: companyA,
			want:    true,
		},
		{
			name:    "admin can create jobs for own company",
			caller:  Caller{UserID: "u1", CompanyID: utils.Ptr(companyA), Role: models.RoleAdmin},
			action:  ActionCreateJob,
			ownerID: companyA,
			want:    true,
		},
		{
			name:    "admin cannot create jobs for another company",
			caller:  Caller{UserID: "u1", CompanyID: utils.Ptr(companyA), Role: models.RoleAdmin},
			action:  ActionCreateJob,
			ownerID: companyB,
			want:    false,
		},
		{
			name:    "staff can read jobs but not create them",
			caller:  Caller{UserID: "u2", CompanyID: utils.Ptr(companyA), Role: models.RoleStaff},
			action:  ActionReadJob,
			ownerID: companyA,
			want:    true,
		},
		{
			name:    "staff cannot create jobs",
			caller:  Caller{UserID: "u2", CompanyID: utils.Ptr(companyA), Role: models.RoleStaff},
			action:  ActionCreateJob,
			ownerID: companyA,
			want:    false,
		},
		{
			name:    "staff cannot write overrides",
			caller:  Caller{UserID: "u2", CompanyID: utils.Ptr(companyA), Role: models.RoleStaff},
			action:  ActionWriteOverride,
			ownerID: companyA,
			want:    false,
		},
		{
			name:    "production can write overrides",
			caller:  Caller{UserID: "u3", CompanyID: utils.Ptr(companyA), Role: models.RoleProduction},
			action:  ActionWriteOverride,
			ownerID: companyA,
			want:    true,
		},
		{
			name:    "admin cannot write catalog",
			caller:  Caller{UserID: "u1", CompanyID: utils.Ptr(companyA), Role: models.RoleAdmin},
			action:  ActionWriteCatalog,
			ownerID: uuid.Nil,
			want:    false,
		},
		{
			name:    "admin cannot manage companies",
			caller:  Caller{UserID: "u1", CompanyID: utils.Ptr(companyA), Role: models.RoleAdmin},
			action:  ActionManageCompany,
			ownerID: companyA,
			want:    false,
		},
		{
			name:    "company user without company claim is denied",
			caller:  Caller{UserID: "u4", Role: models.RoleAdmin},
			action:  ActionReadJob,
			ownerID: companyA,
			want:    false,
		},
		{
			name:    "operator role with company claim is not an operator",
			caller:  Caller{UserID: "u5", CompanyID: utils.Ptr(companyA), Role: models.RoleOperator},
			action:  ActionWriteCatalog,
			ownerID: uuid.Nil,
			want:    false,
		},
		{
			name:    "unknown action is denied",
			caller:  Caller{UserID: "u1", CompanyID: utils.Ptr(companyA), Role: models.RoleAdmin},
			action:  Action("nonsense"),
			ownerID: companyA,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(tt.caller, tt.action, tt.ownerID))
		})
	}
}

func TestCallerIsOperator(t *testing.T) {
	assert.True(t, Caller{UserID: "op", Role: models.RoleOperator}.IsOperator())
	assert.False(t, Caller{UserID: "u", CompanyID: utils.Ptr(uuid.New()), Role: models.RoleOperator}.IsOperator())
	assert.False(t, Caller{UserID: "u", Role: models.RoleAdmin}.IsOperator())
}
