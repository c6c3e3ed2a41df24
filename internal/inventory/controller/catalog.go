package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/auth"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/resinworks/jobstock/internal/inventory/pricing"
	"go.uber.org/zap"
)

// PricedVariant pairs a catalog variant with the pricing view resolved for
// the requesting company.
type PricedVariant struct {
	Variant models.MaterialVariant
	Pricing pricing.Effective
}

// CatalogService manages the material catalog and resolves effective pricing
// views for callers.
type CatalogService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCatalogService(repo Repository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger.Named("catalog_service"),
	}
}

// CreateMaterial adds a new material family. Platform operators only.
func (s *CatalogService) CreateMaterial(ctx context.Context, caller auth.Caller, material *models.Material) (*models.Material, error) {
	if !auth.CanPerform(caller, auth.ActionWriteCatalog, uuid.Nil) {
		return nil, e.ErrAccessDenied
	}
	if material.Name == "" {
		return nil, fmt.Errorf("%w: material name required", e.ErrValidation)
	}
	if material.Unit == "" {
		return nil, fmt.Errorf("%w: material unit required", e.ErrValidation)
	}

	material.ID = uuid.New()
	material.IsActive = true
	if err := s.repo.CreateMaterial(ctx, material); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("%w: material name %q already exists", e.ErrConflict, material.Name)
		}
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	return material, nil
}

// CreateVariant adds a purchasable SKU under an existing, active material.
// Both list prices are set independently and must be non-negative.
func (s *CatalogService) CreateVariant(ctx context.Context, caller auth.Caller, variant *models.MaterialVariant) (*models.MaterialVariant, error) {
	if !auth.CanPerform(caller, auth.ActionWriteCatalog, uuid.Nil) {
		return nil, e.ErrAccessDenied
	}
	if variant.Name == "" {
		return nil, fmt.Errorf("%w: variant name required", e.ErrValidation)
	}
	if variant.RegularPrice.IsNegative() || variant.PreferredPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices must be non-negative", e.ErrValidation)
	}

	material, err := s.repo.GetMaterial(ctx, variant.MaterialID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: material %s", e.ErrNotFound, variant.MaterialID)
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	if !material.IsActive {
		return nil, fmt.Errorf("%w: material %s is inactive", e.ErrValidation, material.ID)
	}

	variant.ID = uuid.New()
	variant.IsActive = true
	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return variant, nil
}

// UpdateVariant modifies catalog fields of a variant. Historical ledger lines
// are untouched; only future resolutions see the new values.
func (s *CatalogService) UpdateVariant(ctx context.Context, caller auth.Caller, update *models.VariantUpdate) (*models.MaterialVariant, error) {
	if !auth.CanPerform(caller, auth.ActionWriteCatalog, uuid.Nil) {
		return nil, e.ErrAccessDenied
	}
	if update.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid variant ID", e.ErrValidation)
	}
	if update.RegularPrice != nil && update.RegularPrice.IsNegative() {
		return nil, fmt.Errorf("%w: regular price must be non-negative", e.ErrValidation)
	}
	if update.PreferredPrice != nil && update.PreferredPrice.IsNegative() {
		return nil, fmt.Errorf("%w: preferred price must be non-negative", e.ErrValidation)
	}

	if err := s.repo.UpdateVariant(ctx, update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}
	return s.repo.GetVariant(ctx, update.ID)
}

// DeactivateVariant soft-deletes a variant so new jobs can no longer use it.
func (s *CatalogService) DeactivateVariant(ctx context.Context, caller auth.Caller, id uuid.UUID) error {
	if !auth.CanPerform(caller, auth.ActionWriteCatalog, uuid.Nil) {
		return e.ErrAccessDenied
	}
	if err := s.repo.DeactivateVariant(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to deactivate variant: %w", err)
	}
	return nil
}

// ResolveVariant returns the pricing view of one variant for the caller's
// company. The tier is re-derived from the Company record on every call;
// token claims are never trusted for pricing.
func (s *CatalogService) ResolveVariant(ctx context.Context, caller auth.Caller, variantID uuid.UUID) (*PricedVariant, error) {
	if !auth.CanPerform(caller, auth.ActionReadCatalog, uuid.Nil) {
		return nil, e.ErrAccessDenied
	}
	variant, err := s.repo.GetVariant(ctx, variantID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: variant %s", e.ErrNotFound, variantID)
		}
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}

	priced, err := s.resolve(ctx, caller, []models.MaterialVariant{*variant})
	if err != nil {
		return nil, err
	}
	return &priced[0], nil
}

// ListVariants returns the active catalog resolved for the caller's company,
// ordered by variant id.
func (s *CatalogService) ListVariants(ctx context.Context, caller auth.Caller) ([]PricedVariant, error) {
	if !auth.CanPerform(caller, auth.ActionReadCatalog, uuid.Nil) {
		return nil, e.ErrAccessDenied
	}
	variants, err := s.repo.ListActiveVariants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	if len(variants) == 0 {
		return []PricedVariant{}, nil
	}
	return s.resolve(ctx, caller, variants)
}

// resolve fetches the caller's company and override rows (one batched query
// per override table) and applies the pure resolver.
func (s *CatalogService) resolve(ctx context.Context, caller auth.Caller, variants []models.MaterialVariant) ([]PricedVariant, error) {
	var company *models.Company
	overrides := pricing.Overrides{}

	if caller.CompanyID != nil {
		var err error
		company, err = s.repo.GetCompany(ctx, *caller.CompanyID)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return nil, fmt.Errorf("%w: company %s", e.ErrNotFound, *caller.CompanyID)
			}
			return nil, fmt.Errorf("failed to get company: %w", err)
		}

		ids := make([]uuid.UUID, 0, len(variants))
		for i := range variants {
			ids = append(ids, variants[i].ID)
		}
		overrides.Overage, err = s.repo.GetOverageOverrides(ctx, company.ID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to get overage overrides: %w", err)
		}
		overrides.Quantity, err = s.repo.GetQuantityOverrides(ctx, company.ID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to get quantity overrides: %w", err)
		}
	}

	effective := pricing.ResolveAll(variants, company, overrides)
	out := make([]PricedVariant, 0, len(variants))
	for i := range variants {
		out = append(out, PricedVariant{Variant: variants[i], Pricing: effective[i]})
	}
	return out, nil
}
