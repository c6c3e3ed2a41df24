package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// UpsertOverageOverride creates or replaces the overage-rate override for
// (company, variant). Concurrent upserts resolve last-writer-wins under the
// unique index; no duplicate rows are possible.
func (r *Repository) UpsertOverageOverride(ctx context.Context, companyID, variantID uuid.UUID, rate decimal.Decimal) error {
	override := models.OverageOverride{
		ID:        uuid.New(),
		CompanyID: companyID,
		VariantID: variantID,
		Rate:      rate,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(&override)
	return result.Error
}

// UpsertQuantityOverride creates or replaces the declared on-hand quantity
// for (company, variant).
func (r *Repository) UpsertQuantityOverride(ctx context.Context, companyID, variantID uuid.UUID, quantity decimal.Decimal) error {
	override := models.QuantityOverride{
		ID:        uuid.New(),
		CompanyID: companyID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&override)
	return result.Error
}

// GetOverageOverrides fetches every overage override for the company across
// the given variants in one query, keyed by variant id.
func (r *Repository) GetOverageOverrides(ctx context.Context, companyID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []models.OverageOverride
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND variant_id IN ?", companyID, variantIDs).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.VariantID] = row.Rate
	}
	return out, nil
}

// GetQuantityOverrides fetches every quantity override for the company across
// the given variants in one query, keyed by variant id.
func (r *Repository) GetQuantityOverrides(ctx context.Context, companyID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []models.QuantityOverride
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND variant_id IN ?", companyID, variantIDs).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.VariantID] = row.Quantity
	}
	return out, nil
}
