package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/auth"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/resinworks/jobstock/internal/inventory/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProjectionService aggregates scheduled material demand against declared
// on-hand quantities to produce reorder lists.
type ProjectionService struct {
	repo   Repository
	logger *zap.Logger
}

func NewProjectionService(repo Repository, logger *zap.Logger) *ProjectionService {
	return &ProjectionService{
		repo:   repo,
		logger: logger.Named("projection_service"),
	}
}

// Project sums ledger quantities per variant across the company's
// non-archived jobs with install dates in [start, end] inclusive, subtracts
// the declared on-hand quantity (zero when no override exists), and clamps at
// zero. Only variants with nonzero scheduled demand appear; output is sorted
// by variant id for stable pagination.
func (s *ProjectionService) Project(ctx context.Context, caller auth.Caller, companyID uuid.UUID, start, end time.Time) ([]models.ReorderItem, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("%w: company ID required", e.ErrValidation)
	}
	if !auth.CanPerform(caller, auth.ActionProject, companyID) {
		return nil, e.ErrAccessDenied
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			e.ErrValidation, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	if _, err := s.repo.GetCompany(ctx, companyID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: company %s", e.ErrNotFound, companyID)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	jobs, err := s.repo.ListJobsInWindow(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if len(jobs) == 0 {
		return []models.ReorderItem{}, nil
	}

	required := make(map[uuid.UUID]decimal.Decimal)
	for _, job := range jobs {
		for _, line := range job.Materials {
			required[line.VariantID] = required[line.VariantID].Add(line.QuantityUsed)
		}
	}
	if len(required) == 0 {
		return []models.ReorderItem{}, nil
	}

	ids := make([]uuid.UUID, 0, len(required))
	for id := range required {
		ids = append(ids, id)
	}

	quantities, err := s.repo.GetQuantityOverrides(ctx, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get quantity overrides: %w", err)
	}
	overrides := pricing.Overrides{Quantity: quantities}

	variants, err := s.repo.GetVariantsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get variants: %w", err)
	}
	names := make(map[uuid.UUID]*models.MaterialVariant, len(variants))
	for i := range variants {
		names[variants[i].ID] = &variants[i]
	}

	items := make([]models.ReorderItem, 0, len(required))
	for id, requiredQty := range required {
		if requiredQty.IsZero() {
			continue
		}
		onHand := overrides.OnHandOrZero(id)
		toOrder := requiredQty.Sub(onHand)
		if toOrder.IsNegative() {
			toOrder = decimal.Zero
		}
		item := models.ReorderItem{
			VariantID:        id,
			RequiredQuantity: requiredQty,
			OnHand:           onHand,
			ToOrder:          toOrder,
		}
		if variant, ok := names[id]; ok {
			item.VariantName = variant.Name
			if variant.Material != nil {
				item.Unit = variant.Material.Unit
			}
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].VariantID.String() < items[j].VariantID.String()
	})
	return items, nil
}
