package controller

import (
	"context"
	"testing"

	"github.com/google/uuid"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func overrideRepoFor(company *models.Company, variant *models.MaterialVariant) *MockRepository {
	return &MockRepository{
		getCompany: func(_ context.Context, id uuid.UUID) (*models.Company, error) {
			if id == company.ID {
				return company, nil
			}
			return nil, e.ErrNotFound
		},
		getVariant: func(_ context.Context, id uuid.UUID) (*models.MaterialVariant, error) {
			if id == variant.ID {
				return variant, nil
			}
			return nil, e.ErrNotFound
		},
		upsertOverage: func(context.Context, uuid.UUID, uuid.UUID, decimal.Decimal) error {
			return nil
		},
		upsertQuantity: func(context.Context, uuid.UUID, uuid.UUID, decimal.Decimal) error {
			return nil
		},
	}
}

func TestOverrideService_UpsertOverageRate(t *testing.T) {
	company := fixtureCompany(false)
	variant := fixtureVariant("base coat", 50, 40)
	svc := NewOverrideService(overrideRepoFor(company, &variant), zaptest.NewLogger(t))
	ctx := context.Background()

	err := svc.UpsertOverageRate(ctx, adminOf(company.ID), company.ID, variant.ID, decimal.NewFromFloat(1.5))
	assert.NoError(t, err)

	err = svc.UpsertOverageRate(ctx, adminOf(company.ID), company.ID, variant.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, e.ErrValidation, "negative rate should be rejected")

	err = svc.UpsertOverageRate(ctx, adminOf(uuid.New()), company.ID, variant.ID, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, e.ErrAccessDenied, "foreign company override should be denied")

	err = svc.UpsertOverageRate(ctx, adminOf(company.ID), company.ID, uuid.New(), decimal.NewFromInt(1))
	require.ErrorIs(t, err, e.ErrNotFound, "unknown variant should be reported")
}

func TestOverrideService_UpsertQuantityZeroAllowed(t *testing.T) {
	company := fixtureCompany(false)
	variant := fixtureVariant("base coat", 50, 40)

	var stored *decimal.Decimal
	repo := overrideRepoFor(company, &variant)
	repo.upsertQuantity = func(_ context.Context, _ uuid.UUID, _ uuid.UUID, qty decimal.Decimal) error {
		stored = &qty
		return nil
	}
	svc := NewOverrideService(repo, zaptest.NewLogger(t))

	err := svc.UpsertQuantity(context.Background(), adminOf(company.ID), company.ID, variant.ID, decimal.Zero)
	require.NoError(t, err, "declaring zero on hand is a valid snapshot")
	require.NotNil(t, stored)
	assert.True(t, stored.IsZero())
}
