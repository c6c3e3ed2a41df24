package controller

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/auth"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var operator = auth.Caller{UserID: "op", Role: models.RoleOperator}

func TestCatalogService_CreateVariantValidation(t *testing.T) {
	material := &models.Material{ID: uuid.New(), Name: "Epoxy", Unit: "gallon", IsActive: true}
	repo := &MockRepository{
		getMaterial: func(_ context.Context, id uuid.UUID) (*models.Material, error) {
			if id == material.ID {
				return material, nil
			}
			return nil, e.ErrNotFound
		},
		createVariant: func(context.Context, *models.MaterialVariant) error {
			return nil
		},
	}
	svc := NewCatalogService(repo, zaptest.NewLogger(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  auth.Caller
		variant *models.MaterialVariant
		wantErr error
	}{
		{
			name:    "company admin cannot write the catalog",
			caller:  adminOf(uuid.New()),
			variant: &models.MaterialVariant{MaterialID: material.ID, Name: "Clear"},
			wantErr: e.ErrAccessDenied,
		},
		{
			name:    "missing name",
			caller:  operator,
			variant: &models.MaterialVariant{MaterialID: material.ID},
			wantErr: e.ErrValidation,
		},
		{
			name:   "negative price",
			caller: operator,
			variant: &models.MaterialVariant{
				MaterialID:   material.ID,
				Name:         "Clear",
				RegularPrice: decimal.NewFromInt(-1),
			},
			wantErr: e.ErrValidation,
		},
		{
			name:    "unknown material",
			caller:  operator,
			variant: &models.MaterialVariant{MaterialID: uuid.New(), Name: "Clear"},
			wantErr: e.ErrNotFound,
		},
		{
			name:   "valid",
			caller: operator,
			variant: &models.MaterialVariant{
				MaterialID:     material.ID,
				Name:           "Clear",
				RegularPrice:   decimal.NewFromInt(50),
				PreferredPrice: decimal.NewFromInt(40),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := svc.CreateVariant(ctx, tt.caller, tt.variant)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.True(t, created.IsActive)
		})
	}
}

func TestCatalogService_ResolveVariantRederivesTier(t *testing.T) {
	variant := fixtureVariant("base coat", 50, 40)
	company := fixtureCompany(true)

	companyFetches := 0
	repo := &MockRepository{
		getVariant: func(_ context.Context, id uuid.UUID) (*models.MaterialVariant, error) {
			if id == variant.ID {
				return &variant, nil
			}
			return nil, e.ErrNotFound
		},
		getCompany: func(_ context.Context, id uuid.UUID) (*models.Company, error) {
			companyFetches++
			if id == company.ID {
				return company, nil
			}
			return nil, e.ErrNotFound
		},
	}
	svc := NewCatalogService(repo, zaptest.NewLogger(t))

	priced, err := svc.ResolveVariant(context.Background(), adminOf(company.ID), variant.ID)
	require.NoError(t, err)
	assert.True(t, priced.Pricing.Price.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 1, companyFetches, "tier must be re-derived from the company record")

	// Flag flipped between calls: the next resolution must see it.
	company.PreferredPricing = false
	priced, err = svc.ResolveVariant(context.Background(), adminOf(company.ID), variant.ID)
	require.NoError(t, err)
	assert.True(t, priced.Pricing.Price.Equal(decimal.NewFromInt(50)))
}

func TestCatalogService_ResolveVariantOperatorView(t *testing.T) {
	variant := fixtureVariant("base coat", 50, 40)
	repo := &MockRepository{
		getVariant: func(context.Context, uuid.UUID) (*models.MaterialVariant, error) {
			return &variant, nil
		},
		getCompany: func(context.Context, uuid.UUID) (*models.Company, error) {
			t.Fatal("operator resolution must not look up a company")
			return nil, nil
		},
	}
	svc := NewCatalogService(repo, zaptest.NewLogger(t))

	priced, err := svc.ResolveVariant(context.Background(), operator, variant.ID)
	require.NoError(t, err)
	assert.True(t, priced.Pricing.Price.Equal(decimal.NewFromInt(50)), "operator sees the regular price")
	assert.Nil(t, priced.Pricing.OverageRate)
	assert.Nil(t, priced.Pricing.OnHand)
}

func TestCatalogService_ListVariantsBatchesOverrides(t *testing.T) {
	v1 := fixtureVariant("base coat", 50, 40)
	v2 := fixtureVariant("top coat", 30, 25)
	company := fixtureCompany(false)

	overageCalls := 0
	quantityCalls := 0
	repo := &MockRepository{
		listActiveVariants: func(context.Context) ([]models.MaterialVariant, error) {
			return []models.MaterialVariant{v1, v2}, nil
		},
		getCompany: func(context.Context, uuid.UUID) (*models.Company, error) {
			return company, nil
		},
		getOverageOverrides: func(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
			overageCalls++
			assert.Len(t, ids, 2, "one batched lookup for the whole list")
			return map[uuid.UUID]decimal.Decimal{v1.ID: decimal.NewFromFloat(1.5)}, nil
		},
		getQuantityOverrides: func(context.Context, uuid.UUID, []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
			quantityCalls++
			return nil, nil
		},
	}
	svc := NewCatalogService(repo, zaptest.NewLogger(t))

	priced, err := svc.ListVariants(context.Background(), adminOf(company.ID))
	require.NoError(t, err)
	require.Len(t, priced, 2)
	assert.Equal(t, 1, overageCalls)
	assert.Equal(t, 1, quantityCalls)

	require.NotNil(t, priced[0].Pricing.OverageRate)
	assert.True(t, priced[0].Pricing.OverageRate.Equal(decimal.NewFromFloat(1.5)))
	assert.Nil(t, priced[1].Pricing.OverageRate, "company without an override gets no overage field")
}
