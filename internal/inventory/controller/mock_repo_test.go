package controller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/events"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
)

// MockRepository implements the Repository interface for testing; each method
// delegates to an optional func field.
type MockRepository struct {
	createMaterial       func(context.Context, *models.Material) error
	getMaterial          func(context.Context, uuid.UUID) (*models.Material, error)
	createVariant        func(context.Context, *models.MaterialVariant) error
	getVariant           func(context.Context, uuid.UUID) (*models.MaterialVariant, error)
	getVariantsByIDs     func(context.Context, []uuid.UUID) ([]models.MaterialVariant, error)
	listActiveVariants   func(context.Context) ([]models.MaterialVariant, error)
	updateVariant        func(context.Context, *models.VariantUpdate) error
	deactivateVariant    func(context.Context, uuid.UUID) error
	createCompany        func(context.Context, *models.Company) error
	getCompany           func(context.Context, uuid.UUID) (*models.Company, error)
	updateCompany        func(context.Context, *models.CompanyUpdate) error
	upsertOverage        func(context.Context, uuid.UUID, uuid.UUID, decimal.Decimal) error
	upsertQuantity       func(context.Context, uuid.UUID, uuid.UUID, decimal.Decimal) error
	getOverageOverrides  func(context.Context, uuid.UUID, []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	getQuantityOverrides func(context.Context, uuid.UUID, []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	createJob            func(context.Context, *models.Job) error
	getJob               func(context.Context, uuid.UUID) (*models.Job, error)
	jobKeyExists         func(context.Context, uuid.UUID, string) (bool, error)
	replaceJobMaterials  func(context.Context, uuid.UUID, []models.JobMaterial) error
	updateJobStatus      func(context.Context, uuid.UUID, models.JobStatus) error
	listJobsInWindow     func(context.Context, uuid.UUID, time.Time, time.Time) ([]models.Job, error)
	createTemplate       func(context.Context, *models.JobTemplate) error
	getTemplate          func(context.Context, uuid.UUID) (*models.JobTemplate, error)
}

func (m *MockRepository) CreateMaterial(ctx context.Context, material *models.Material) error {
	return m.createMaterial(ctx, material)
}

func (m *MockRepository) GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	return m.getMaterial(ctx, id)
}

func (m *MockRepository) CreateVariant(ctx context.Context, variant *models.MaterialVariant) error {
	return m.createVariant(ctx, variant)
}

func (m *MockRepository) GetVariant(ctx context.Context, id uuid.UUID) (*models.MaterialVariant, error) {
	return m.getVariant(ctx, id)
}

func (m *MockRepository) GetVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MaterialVariant, error) {
	return m.getVariantsByIDs(ctx, ids)
}

func (m *MockRepository) ListActiveVariants(ctx context.Context) ([]models.MaterialVariant, error) {
	return m.listActiveVariants(ctx)
}

func (m *MockRepository) UpdateVariant(ctx context.Context, update *models.VariantUpdate) error {
	return m.updateVariant(ctx, update)
}

func (m *MockRepository) DeactivateVariant(ctx context.Context, id uuid.UUID) error {
	return m.deactivateVariant(ctx, id)
}

func (m *MockRepository) CreateCompany(ctx context.Context, company *models.Company) error {
	return m.createCompany(ctx, company)
}

func (m *MockRepository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return m.getCompany(ctx, id)
}

func (m *MockRepository) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error {
	return m.updateCompany(ctx, update)
}

func (m *MockRepository) UpsertOverageOverride(ctx context.Context, companyID, variantID uuid.UUID, rate decimal.Decimal) error {
	return m.upsertOverage(ctx, companyID, variantID, rate)
}

func (m *MockRepository) UpsertQuantityOverride(ctx context.Context, companyID, variantID uuid.UUID, quantity decimal.Decimal) error {
	return m.upsertQuantity(ctx, companyID, variantID, quantity)
}

func (m *MockRepository) GetOverageOverrides(ctx context.Context, companyID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	if m.getOverageOverrides == nil {
		return map[uuid.UUID]decimal.Decimal{}, nil
	}
	return m.getOverageOverrides(ctx, companyID, variantIDs)
}

func (m *MockRepository) GetQuantityOverrides(ctx context.Context, companyID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	if m.getQuantityOverrides == nil {
		return map[uuid.UUID]decimal.Decimal{}, nil
	}
	return m.getQuantityOverrides(ctx, companyID, variantIDs)
}

func (m *MockRepository) CreateJob(ctx context.Context, job *models.Job) error {
	return m.createJob(ctx, job)
}

func (m *MockRepository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.getJob(ctx, id)
}

func (m *MockRepository) JobKeyExists(ctx context.Context, companyID uuid.UUID, jobKey string) (bool, error) {
	return m.jobKeyExists(ctx, companyID, jobKey)
}

func (m *MockRepository) ReplaceJobMaterials(ctx context.Context, jobID uuid.UUID, lines []models.JobMaterial) error {
	return m.replaceJobMaterials(ctx, jobID, lines)
}

func (m *MockRepository) UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	return m.updateJobStatus(ctx, id, status)
}

func (m *MockRepository) ListJobsInWindow(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]models.Job, error) {
	return m.listJobsInWindow(ctx, companyID, start, end)
}

func (m *MockRepository) CreateTemplate(ctx context.Context, template *models.JobTemplate) error {
	return m.createTemplate(ctx, template)
}

func (m *MockRepository) GetTemplate(ctx context.Context, id uuid.UUID) (*models.JobTemplate, error) {
	return m.getTemplate(ctx, id)
}

func (m *MockRepository) Close() error {
	return nil
}

// MockProducer is a test double for the Kafka producer.
type MockProducer struct {
	mu             sync.Mutex
	producedEvents []events.EventType
	wg             *sync.WaitGroup
}

// Produce records the event type and signals the wait group.
func (m *MockProducer) Produce(eventType events.EventType, _ *models.Job) {
	m.mu.Lock()
	m.producedEvents = append(m.producedEvents, eventType)
	m.mu.Unlock()
	if m.wg != nil {
		m.wg.Done()
	}
}

func (m *MockProducer) Events() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.EventType(nil), m.producedEvents...)
}
