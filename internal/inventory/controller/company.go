package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/auth"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/resinworks/jobstock/internal/pkg/utils"
	"go.uber.org/zap"
)

// CompanyService manages tenants and their pricing-tier flag.
type CompanyService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCompanyService(repo Repository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:   repo,
		logger: logger.Named("company_service"),
	}
}

// CreateCompany registers a new tenant. Platform operators only.
func (s *CompanyService) CreateCompany(ctx context.Context, caller auth.Caller, company *models.Company) (*models.Company, error) {
	if !auth.CanPerform(caller, auth.ActionManageCompany, uuid.Nil) {
		return nil, e.ErrAccessDenied
	}
	if company.Name == "" || len(company.Name) > 120 {
		return nil, fmt.Errorf("%w: invalid company name", e.ErrValidation)
	}

	company.ID = uuid.New()
	company.IsActive = true
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("%w: company name %q already exists", e.ErrConflict, company.Name)
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetCompany retrieves a tenant. Company users may only read their own.
func (s *CompanyService) GetCompany(ctx context.Context, caller auth.Caller, id uuid.UUID) (*models.Company, error) {
	if !caller.IsOperator() {
		if caller.CompanyID == nil || *caller.CompanyID != id {
			return nil, e.ErrAccessDenied
		}
	}
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// SetPreferredPricing flips the company's pricing-tier flag. Existing ledger
// lines keep their locked prices; only future resolutions change.
func (s *CompanyService) SetPreferredPricing(ctx context.Context, caller auth.Caller, id uuid.UUID, enabled bool) (*models.Company, error) {
	if !auth.CanPerform(caller, auth.ActionManageCompany, uuid.Nil) {
		return nil, e.ErrAccessDenied
	}
	update := &models.CompanyUpdate{
		ID:               id,
		PreferredPricing: utils.Ptr(enabled),
	}
	if err := s.repo.UpdateCompany(ctx, update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return s.repo.GetCompany(ctx, id)
}
