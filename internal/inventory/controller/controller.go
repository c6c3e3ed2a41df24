// Package controller implements the core business logic of the pricing and
// inventory engine: catalog management, effective-price resolution, the job
// material ledger, stock projection, and override upserts.
package controller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/events"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
)

// EventProducer publishes job lifecycle events. Delivery failures never roll
// back a committed entity.
type EventProducer interface {
	Produce(eventType events.EventType, job *models.Job)
}

// Repository defines the storage interface the services operate against.
type Repository interface {
	// Catalog
	CreateMaterial(ctx context.Context, material *models.Material) error
	GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error)
	CreateVariant(ctx context.Context, variant *models.MaterialVariant) error
	GetVariant(ctx context.Context, id uuid.UUID) (*models.MaterialVariant, error)
	GetVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MaterialVariant, error)
	ListActiveVariants(ctx context.Context) ([]models.MaterialVariant, error)
	UpdateVariant(ctx context.Context, update *models.VariantUpdate) error
	DeactivateVariant(ctx context.Context, id uuid.UUID) error

	// Companies
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error

	// Overrides
	UpsertOverageOverride(ctx context.Context, companyID, variantID uuid.UUID, rate decimal.Decimal) error
	UpsertQuantityOverride(ctx context.Context, companyID, variantID uuid.UUID, quantity decimal.Decimal) error
	GetOverageOverrides(ctx context.Context, companyID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	GetQuantityOverrides(ctx context.Context, companyID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	// Jobs and templates
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	JobKeyExists(ctx context.Context, companyID uuid.UUID, jobKey string) (bool, error)
	ReplaceJobMaterials(ctx context.Context, jobID uuid.UUID, lines []models.JobMaterial) error
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error
	ListJobsInWindow(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]models.Job, error)
	CreateTemplate(ctx context.Context, template *models.JobTemplate) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*models.JobTemplate, error)

	Close() error
}
