package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/auth"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/events"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/resinworks/jobstock/internal/inventory/pricing"
	"go.uber.org/zap"
)

// JobService owns the job material ledger: creation, full line replacement,
// reads, and status transitions. Every line's CostAtTime is resolved at write
// time with the owning company's current tier and is immutable afterward.
type JobService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewJobService(repo Repository, producer EventProducer, logger *zap.Logger) *JobService {
	return &JobService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("job_service"),
	}
}

// CreateJob validates the header and every line, resolves CostAtTime per line
// with the company's current tier, and persists header plus lines as one
// atomic unit. If any line fails validation nothing is written.
func (s *JobService) CreateJob(ctx context.Context, caller auth.Caller, job *models.Job, lines []models.LineInput) (*models.Job, error) {
	if job.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("%w: company ID required", e.ErrValidation)
	}
	if !auth.CanPerform(caller, auth.ActionCreateJob, job.CompanyID) {
		return nil, e.ErrAccessDenied
	}
	if job.JobKey == "" {
		return nil, fmt.Errorf("%w: job key required", e.ErrValidation)
	}
	if job.ScheduleDate.IsZero() {
		return nil, fmt.Errorf("%w: schedule date required", e.ErrValidation)
	}
	if job.InstallDate.IsZero() {
		job.InstallDate = job.ScheduleDate
	}

	company, err := s.repo.GetCompany(ctx, job.CompanyID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: company %s", e.ErrNotFound, job.CompanyID)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	exists, err := s.repo.JobKeyExists(ctx, job.CompanyID, job.JobKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check job key: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: job key %q already exists for company", e.ErrConflict, job.JobKey)
	}

	materials, err := s.buildLedgerLines(ctx, company, job.TemplateID, lines)
	if err != nil {
		return nil, err
	}

	job.ID = uuid.New()
	if job.Status == "" {
		job.Status = models.JobPending
	}
	job.Materials = materials
	for i := range job.Materials {
		job.Materials[i].JobID = job.ID
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("%w: job key %q already exists for company", e.ErrConflict, job.JobKey)
		}
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	go func() {
		s.producer.Produce(events.JobCreated, job)
	}()
	return job, nil
}

// GetJob fetches a job with its ledger lines. A caller outside the owning
// company gets an access-denied error, not a not-found, so the boundary is
// auditable.
func (s *JobService) GetJob(ctx context.Context, caller auth.Caller, id uuid.UUID) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: job %s", e.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if !auth.CanPerform(caller, auth.ActionReadJob, job.CompanyID) {
		return nil, e.ErrAccessDenied
	}
	return job, nil
}

// ReplaceLines deletes the job's entire line set and writes the submitted
// one, re-validating exactly as on create and re-resolving CostAtTime with
// the company's current tier. This is the only path that refreshes locked
// prices, and it is always operator-triggered.
func (s *JobService) ReplaceLines(ctx context.Context, caller auth.Caller, jobID uuid.UUID, lines []models.LineInput) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: job %s", e.ErrNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if !auth.CanPerform(caller, auth.ActionReplaceLines, job.CompanyID) {
		return nil, e.ErrAccessDenied
	}

	company, err := s.repo.GetCompany(ctx, job.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	materials, err := s.buildLedgerLines(ctx, company, job.TemplateID, lines)
	if err != nil {
		return nil, err
	}
	for i := range materials {
		materials[i].JobID = job.ID
	}

	if err := s.repo.ReplaceJobMaterials(ctx, job.ID, materials); err != nil {
		return nil, fmt.Errorf("failed to replace job materials: %w", err)
	}

	updated, err := s.repo.GetJob(ctx, job.ID)
	if err != nil {
		s.logger.Error("failed to re-fetch job after line replacement",
			zap.Error(err),
			zap.String("job_id", job.ID.String()),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.JobMaterialsReplaced, updated)
	}()
	return updated, nil
}

// UpdateStatus moves a job along its lifecycle, rejecting transitions the
// state machine does not allow.
func (s *JobService) UpdateStatus(ctx context.Context, caller auth.Caller, id uuid.UUID, next models.JobStatus) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: job %s", e.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if !auth.CanPerform(caller, auth.ActionChangeStatus, job.CompanyID) {
		return nil, e.ErrAccessDenied
	}
	if !job.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot transition job from %s to %s", e.ErrValidation, job.Status, next)
	}

	if err := s.repo.UpdateJobStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	job.Status = next

	go func() {
		s.producer.Produce(events.JobStatusChanged, job)
	}()
	return job, nil
}

// CreateTemplate defines a named variant-type composition. Platform
// operators only.
func (s *JobService) CreateTemplate(ctx context.Context, caller auth.Caller, template *models.JobTemplate) (*models.JobTemplate, error) {
	if !auth.CanPerform(caller, auth.ActionWriteCatalog, uuid.Nil) {
		return nil, e.ErrAccessDenied
	}
	if template.Name == "" {
		return nil, fmt.Errorf("%w: template name required", e.ErrValidation)
	}
	for _, req := range template.Requirements {
		if req.VariantType == "" {
			return nil, fmt.Errorf("%w: requirement variant type required", e.ErrValidation)
		}
		if req.Count <= 0 {
			return nil, fmt.Errorf("%w: requirement count for %q must be positive", e.ErrValidation, req.VariantType)
		}
	}

	template.ID = uuid.New()
	template.IsActive = true
	for i := range template.Requirements {
		template.Requirements[i].ID = uuid.New()
		template.Requirements[i].TemplateID = template.ID
	}
	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("%w: template name %q already exists", e.ErrConflict, template.Name)
		}
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

// buildLedgerLines validates the submitted lines against the catalog and
// template, then locks CostAtTime per line using the company's current tier.
// Variant lookups and pricing run off one batched fetch.
func (s *JobService) buildLedgerLines(ctx context.Context, company *models.Company, templateID *uuid.UUID, lines []models.LineInput) ([]models.JobMaterial, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity for variant %s must be positive", e.ErrValidation, line.VariantID)
		}
		if !seen[line.VariantID] {
			seen[line.VariantID] = true
			ids = append(ids, line.VariantID)
		}
	}

	byID := make(map[uuid.UUID]*models.MaterialVariant, len(ids))
	if len(ids) > 0 {
		variants, err := s.repo.GetVariantsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to get variants: %w", err)
		}
		for i := range variants {
			byID[variants[i].ID] = &variants[i]
		}
	}

	for _, line := range lines {
		variant, ok := byID[line.VariantID]
		if !ok {
			return nil, fmt.Errorf("%w: variant %s", e.ErrNotFound, line.VariantID)
		}
		if !variant.IsActive {
			return nil, fmt.Errorf("%w: variant %s is inactive", e.ErrValidation, variant.ID)
		}
		if variant.Material == nil || !variant.Material.IsActive {
			return nil, fmt.Errorf("%w: material for variant %s is inactive", e.ErrValidation, variant.ID)
		}
	}

	// An empty line set still goes through the template check, so a template
	// with requirements rejects a job with no lines.
	if templateID != nil {
		if err := s.checkTemplateComposition(ctx, *templateID, lines, byID); err != nil {
			return nil, err
		}
	}

	materials := make([]models.JobMaterial, 0, len(lines))
	for _, line := range lines {
		variant := byID[line.VariantID]
		effective := pricing.Resolve(variant, company, pricing.Overrides{})
		materials = append(materials, models.JobMaterial{
			ID:           uuid.New(),
			VariantID:    variant.ID,
			QuantityUsed: line.Quantity,
			Unit:         variant.Material.Unit,
			CostAtTime:   effective.Price,
		})
	}
	return materials, nil
}

// checkTemplateComposition verifies the submitted lines match the template's
// required counts per variant type exactly, reporting every offending type.
func (s *JobService) checkTemplateComposition(ctx context.Context, templateID uuid.UUID, lines []models.LineInput, byID map[uuid.UUID]*models.MaterialVariant) error {
	template, err := s.repo.GetTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%w: template %s", e.ErrNotFound, templateID)
		}
		return fmt.Errorf("failed to get template: %w", err)
	}

	found := make(map[string]int)
	for _, line := range lines {
		found[byID[line.VariantID].VariantType]++
	}

	var mismatches []e.TypeCount
	expected := make(map[string]int, len(template.Requirements))
	for _, req := range template.Requirements {
		expected[req.VariantType] = req.Count
		if found[req.VariantType] != req.Count {
			mismatches = append(mismatches, e.TypeCount{
				VariantType: req.VariantType,
				Expected:    req.Count,
				Found:       found[req.VariantType],
			})
		}
	}
	for variantType, count := range found {
		if _, ok := expected[variantType]; !ok {
			mismatches = append(mismatches, e.TypeCount{
				VariantType: variantType,
				Expected:    0,
				Found:       count,
			})
		}
	}

	if len(mismatches) > 0 {
		sort.Slice(mismatches, func(i, j int) bool {
			return mismatches[i].VariantType < mismatches[j].VariantType
		})
		return &e.TemplateMismatchError{TemplateName: template.Name, Counts: mismatches}
	}
	return nil
}
