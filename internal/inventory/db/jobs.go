package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"gorm.io/gorm"
)

// CreateJob persists a job header together with its ledger lines in one
// transaction: either every row exists afterward or none do.
func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(job).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return e.ErrConflict
		}
		return err
	}
	return nil
}

func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	result := r.db.WithContext(ctx).Preload("Materials").First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &job, nil
}

// JobKeyExists reports whether the company already uses the business key.
func (r *Repository) JobKeyExists(ctx context.Context, companyID uuid.UUID, jobKey string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("company_id = ? AND job_key = ?", companyID, jobKey).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// ReplaceJobMaterials deletes every ledger line of the job and inserts the
// new set inside one transaction, so no other transaction observes a job
// with zero lines.
func (r *Repository) ReplaceJobMaterials(ctx context.Context, jobID uuid.UUID, lines []models.JobMaterial) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobMaterial{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

func (r *Repository) UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// ListJobsInWindow returns the company's non-archived jobs whose install date
// falls within [start, end] inclusive, ledger lines preloaded.
func (r *Repository) ListJobsInWindow(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]models.Job, error) {
	var jobs []models.Job
	result := r.db.WithContext(ctx).Preload("Materials").
		Where("company_id = ? AND status <> ? AND install_date >= ? AND install_date <= ?",
			companyID, models.JobArchived, start, end).
		Order("id").
		Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}
