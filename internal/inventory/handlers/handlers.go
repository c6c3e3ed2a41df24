// Package handlers provides the HTTP transport for the inventory engine,
// bridging gin routes to the controller services and translating service
// errors to status codes.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/auth"
	"github.com/resinworks/jobstock/internal/inventory/controller"
	e "github.com/resinworks/jobstock/internal/inventory/errors"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogController is the catalog surface the handlers invoke.
type CatalogController interface {
	CreateMaterial(ctx context.Context, caller auth.Caller, material *models.Material) (*models.Material, error)
	CreateVariant(ctx context.Context, caller auth.Caller, variant *models.MaterialVariant) (*models.MaterialVariant, error)
	UpdateVariant(ctx context.Context, caller auth.Caller, update *models.VariantUpdate) (*models.MaterialVariant, error)
	DeactivateVariant(ctx context.Context, caller auth.Caller, id uuid.UUID) error
	ResolveVariant(ctx context.Context, caller auth.Caller, variantID uuid.UUID) (*controller.PricedVariant, error)
	ListVariants(ctx context.Context, caller auth.Caller) ([]controller.PricedVariant, error)
}

// JobController is the ledger surface the handlers invoke.
type JobController interface {
	CreateJob(ctx context.Context, caller auth.Caller, job *models.Job, lines []models.LineInput) (*models.Job, error)
	GetJob(ctx context.Context, caller auth.Caller, id uuid.UUID) (*models.Job, error)
	ReplaceLines(ctx context.Context, caller auth.Caller, jobID uuid.UUID, lines []models.LineInput) (*models.Job, error)
	UpdateStatus(ctx context.Context, caller auth.Caller, id uuid.UUID, next models.JobStatus) (*models.Job, error)
	CreateTemplate(ctx context.Context, caller auth.Caller, template *models.JobTemplate) (*models.JobTemplate, error)
}

// ProjectionController is the reorder-projection surface.
type ProjectionController interface {
	Project(ctx context.Context, caller auth.Caller, companyID uuid.UUID, start, end time.Time) ([]models.ReorderItem, error)
}

// OverrideController is the override-upsert surface.
type OverrideController interface {
	UpsertOverageRate(ctx context.Context, caller auth.Caller, companyID, variantID uuid.UUID, rate decimal.Decimal) error
	UpsertQuantity(ctx context.Context, caller auth.Caller, companyID, variantID uuid.UUID, quantity decimal.Decimal) error
}

// CompanyController is the tenant-management surface.
type CompanyController interface {
	CreateCompany(ctx context.Context, caller auth.Caller, company *models.Company) (*models.Company, error)
	GetCompany(ctx context.Context, caller auth.Caller, id uuid.UUID) (*models.Company, error)
	SetPreferredPricing(ctx context.Context, caller auth.Caller, id uuid.UUID, enabled bool) (*models.Company, error)
}

// API groups the controllers behind the HTTP routes.
type API struct {
	catalog    CatalogController
	jobs       JobController
	projection ProjectionController
	overrides  OverrideController
	companies  CompanyController
	logger     *zap.Logger
}

func NewAPI(
	catalog CatalogController,
	jobs JobController,
	projection ProjectionController,
	overrides OverrideController,
	companies CompanyController,
	logger *zap.Logger,
) *API {
	return &API{
		catalog:    catalog,
		jobs:       jobs,
		projection: projection,
		overrides:  overrides,
		companies:  companies,
		logger:     logger.Named("http_handler"),
	}
}

// Register mounts every route under /v1 behind the auth middleware.
func (a *API) Register(router *gin.Engine, jwtSecret string) {
	v1 := router.Group("/v1", auth.Middleware(jwtSecret))

	v1.GET("/variants", a.listVariants)
	v1.GET("/variants/:id", a.getVariant)
	v1.POST("/variants", a.createVariant)
	v1.PATCH("/variants/:id", a.updateVariant)
	v1.DELETE("/variants/:id", a.deactivateVariant)
	v1.POST("/materials", a.createMaterial)
	v1.POST("/templates", a.createTemplate)

	v1.POST("/jobs", a.createJob)
	v1.GET("/jobs/:id", a.getJob)
	v1.PUT("/jobs/:id/materials", a.replaceLines)
	v1.PUT("/jobs/:id/status", a.updateJobStatus)

	v1.GET("/projection", a.project)

	v1.PUT("/overrides/overage/:variantID", a.upsertOverageRate)
	v1.PUT("/overrides/quantity/:variantID", a.upsertQuantity)

	v1.POST("/companies", a.createCompany)
	v1.GET("/companies/:id", a.getCompany)
	v1.PUT("/companies/:id/preferred-pricing", a.setPreferredPricing)
}

// mapServiceError translates controller errors to HTTP status codes. The
// error text is preserved so the caller sees the offending field or id.
func (a *API) mapServiceError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, e.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, e.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, e.ErrConflict):
		status = http.StatusConflict
	default:
		a.logger.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	body := gin.H{"error": err.Error()}
	var mismatch *e.TemplateMismatchError
	if errors.As(err, &mismatch) {
		body["template"] = mismatch.TemplateName
		body["counts"] = mismatch.Counts
	}
	c.JSON(status, body)
}

// caller pulls the identity set by the auth middleware; the middleware
// guarantees presence on registered routes.
func (a *API) caller(c *gin.Context) (auth.Caller, bool) {
	caller, ok := auth.CallerFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller identity missing"})
	}
	return caller, ok
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
