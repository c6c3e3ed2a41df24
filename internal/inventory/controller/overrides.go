package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/auth"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OverrideService upserts per-company overage-rate and on-hand quantity
// overrides. One row per (company, variant); writes replace.
type OverrideService struct {
	repo   Repository
	logger *zap.Logger
}

func NewOverrideService(repo Repository, logger *zap.Logger) *OverrideService {
	return &OverrideService{
		repo:   repo,
		logger: logger.Named("override_service"),
	}
}

// UpsertOverageRate creates or replaces the company's overage-rate override
// for a variant.
func (s *OverrideService) UpsertOverageRate(ctx context.Context, caller auth.Caller, companyID, variantID uuid.UUID, rate decimal.Decimal) error {
	if err := s.validateTarget(ctx, caller, companyID, variantID); err != nil {
		return err
	}
	if rate.IsNegative() {
		return fmt.Errorf("%w: overage rate must be non-negative", e.ErrValidation)
	}
	if err := s.repo.UpsertOverageOverride(ctx, companyID, variantID, rate); err != nil {
		return fmt.Errorf("failed to upsert overage override: %w", err)
	}
	return nil
}

// UpsertQuantity creates or replaces the company's declared on-hand quantity
// for a variant. This is a snapshot; job consumption never decrements it.
func (s *OverrideService) UpsertQuantity(ctx context.Context, caller auth.Caller, companyID, variantID uuid.UUID, quantity decimal.Decimal) error {
	if err := s.validateTarget(ctx, caller, companyID, variantID); err != nil {
		return err
	}
	if quantity.IsNegative() {
		return fmt.Errorf("%w: quantity must be non-negative", e.ErrValidation)
	}
	if err := s.repo.UpsertQuantityOverride(ctx, companyID, variantID, quantity); err != nil {
		return fmt.Errorf("failed to upsert quantity override: %w", err)
	}
	return nil
}

func (s *OverrideService) validateTarget(ctx context.Context, caller auth.Caller, companyID, variantID uuid.UUID) error {
	if companyID == uuid.Nil {
		return fmt.Errorf("%w: company ID required", e.ErrValidation)
	}
	if !auth.CanPerform(caller, auth.ActionWriteOverride, companyID) {
		return e.ErrAccessDenied
	}
	if _, err := s.repo.GetCompany(ctx, companyID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%w: company %s", e.ErrNotFound, companyID)
		}
		return fmt.Errorf("failed to get company: %w", err)
	}
	if _, err := s.repo.GetVariant(ctx, variantID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%w: variant %s", e.ErrNotFound, variantID)
		}
		return fmt.Errorf("failed to get variant: %w", err)
	}
	return nil
}
