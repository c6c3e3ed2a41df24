// Package pricing resolves the effective price and consumption parameters a
// company actually sees for a material variant: the tier-selected list price
// plus any per-company overage and on-hand overrides.
//
// Everything here is pure with respect to already-fetched rows; callers fetch
// the company and override rows and pass them in, so resolution is idempotent
// and side-effect free.
package pricing

import (
	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
)

// Overrides holds a company's override rows for a set of variants, keyed by
// variant id. Absence of a key means "no override", which is distinct from an
// override of zero.
type Overrides struct {
	Overage  map[uuid.UUID]decimal.Decimal
	Quantity map[uuid.UUID]decimal.Decimal
}

// Effective is the resolved pricing view of one variant for one company.
// OverageRate and OnHand are nil when the company has no override for the
// variant; OverageRate is advisory and never replaces Price.
type Effective struct {
	VariantID   uuid.UUID
	Price       decimal.Decimal
	OverageRate *decimal.Decimal
	OnHand      *decimal.Decimal
}

// Resolve computes the effective pricing view for one variant. A nil company
// (anonymous or platform-operator view) sees the regular price with no
// override lookup. The tier switch is the company's PreferredPricing flag and
// nothing else.
func Resolve(variant *models.MaterialVariant, company *models.Company, overrides Overrides) Effective {
	eff := Effective{
		VariantID: variant.ID,
		Price:     variant.RegularPrice,
	}
	if company == nil {
		return eff
	}
	if company.PreferredPricing {
		eff.Price = variant.PreferredPrice
	}
	if rate, ok := overrides.Overage[variant.ID]; ok {
		r := rate
		eff.OverageRate = &r
	}
	if qty, ok := overrides.Quantity[variant.ID]; ok {
		q := qty
		eff.OnHand = &q
	}
	return eff
}

// ResolveAll resolves a list of variants for one company against one
// pre-fetched override set. The override maps are expected to come from a
// single batched query per table, not per-variant lookups.
func ResolveAll(variants []models.MaterialVariant, company *models.Company, overrides Overrides) []Effective {
	out := make([]Effective, 0, len(variants))
	for i := range variants {
		out = append(out, Resolve(&variants[i], company, overrides))
	}
	return out
}

// OnHandOrZero returns the company's declared on-hand quantity for the
// variant, treating a missing override as zero. Projection uses this so a
// variant without an override still appears in the reorder list.
func (o Overrides) OnHandOrZero(variantID uuid.UUID) decimal.Decimal {
	if qty, ok := o.Quantity[variantID]; ok {
		return qty
	}
	return decimal.Zero
}
