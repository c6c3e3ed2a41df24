package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobPending   JobStatus = "PENDING"
	JobOrdered   JobStatus = "ORDERED"
	JobCompleted JobStatus = "COMPLETED"
	JobHold      JobStatus = "HOLD"
	JobCancelled JobStatus = "CANCELLED"
	JobArchived  JobStatus = "ARCHIVED"
)

// jobTransitions lists the allowed next states per status. Archived is
// terminal; hold can resume to pending or ordered.
var jobTransitions = map[JobStatus][]JobStatus{
	JobPending:   {JobOrdered, JobHold, JobCancelled, JobArchived},
	JobOrdered:   {JobCompleted, JobHold, JobCancelled, JobArchived},
	JobCompleted: {JobArchived},
	JobHold:      {JobPending, JobOrdered, JobCancelled, JobArchived},
	JobCancelled: {JobArchived},
	JobArchived:  {},
}

// CanTransitionTo reports whether a job may move from s to next.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Job is a scheduled piece of work for one company at one location, carrying
// the material ledger lines locked at creation time.
type Job struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// CompanyID is the owning tenant.
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_company_key;index"`
	// JobKey is the client-facing job identifier, unique within a company.
	JobKey string `gorm:"size:64;not null;uniqueIndex:idx_job_company_key"`
	// LocationID references the external location record.
	LocationID uuid.UUID `gorm:"type:uuid"`
	// TemplateID, when set, names the template whose composition the ledger
	// lines were validated against.
	TemplateID *uuid.UUID `gorm:"type:uuid"`
	Status     JobStatus  `gorm:"size:16;not null;default:PENDING"`
	// ScheduleDate is when the job is scheduled.
	ScheduleDate time.Time `gorm:"not null"`
	// InstallDate is when materials must be on site; projection windows
	// filter on it. Defaults to ScheduleDate when unset.
	InstallDate time.Time     `gorm:"not null;index"`
	Materials   []JobMaterial `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobMaterial is one immutable ledger line: a variant, the quantity consumed,
// and the price resolved when the line was written. CostAtTime is never
// recomputed from later catalog or override state.
type JobMaterial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;index"`
	// QuantityUsed is the quantity consumed by the job.
	QuantityUsed decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	// Unit is copied from the variant's parent material at creation time.
	Unit string `gorm:"size:32;not null"`
	// CostAtTime is the effective unit price resolved at creation, frozen.
	CostAtTime decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt  time.Time
}

// LineInput is a submitted (variant, quantity) pair for job creation or a
// full line replacement.
type LineInput struct {
	VariantID uuid.UUID
	Quantity  decimal.Decimal
}

// ReorderItem is one row of a stock projection: scheduled demand for a
// variant compared against the company's declared on-hand quantity.
type ReorderItem struct {
	VariantID        uuid.UUID
	VariantName      string
	Unit             string
	RequiredQuantity decimal.Decimal
	OnHand           decimal.Decimal
	ToOrder          decimal.Decimal
}
