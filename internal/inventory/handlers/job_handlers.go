package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
)

type lineInputRequest struct {
	VariantID uuid.UUID       `json:"variant_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type createJobRequest struct {
	CompanyID    uuid.UUID          `json:"company_id" binding:"required"`
	JobKey       string             `json:"job_key" binding:"required"`
	LocationID   uuid.UUID          `json:"location_id"`
	TemplateID   *uuid.UUID         `json:"template_id"`
	ScheduleDate time.Time          `json:"schedule_date" binding:"required"`
	InstallDate  time.Time          `json:"install_date"`
	Lines        []lineInputRequest `json:"lines"`
}

func (a *API) createJob(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := &models.Job{
		CompanyID:    req.CompanyID,
		JobKey:       req.JobKey,
		LocationID:   req.LocationID,
		TemplateID:   req.TemplateID,
		ScheduleDate: req.ScheduleDate,
		InstallDate:  req.InstallDate,
	}
	created, err := a.jobs.CreateJob(c.Request.Context(), caller, job, toLineInputs(req.Lines))
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (a *API) getJob(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	job, err := a.jobs.GetJob(c.Request.Context(), caller, id)
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type replaceLinesRequest struct {
	Lines []lineInputRequest `json:"lines"`
}

func (a *API) replaceLines(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req replaceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := a.jobs.ReplaceLines(c.Request.Context(), caller, id, toLineInputs(req.Lines))
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type updateStatusRequest struct {
	Status models.JobStatus `json:"status" binding:"required"`
}

func (a *API) updateJobStatus(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := a.jobs.UpdateStatus(c.Request.Context(), caller, id, req.Status)
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type templateRequirementRequest struct {
	VariantType string `json:"variant_type" binding:"required"`
	Count       int    `json:"count" binding:"required"`
}

type createTemplateRequest struct {
	Name         string                       `json:"name" binding:"required"`
	Requirements []templateRequirementRequest `json:"requirements" binding:"required"`
}

func (a *API) createTemplate(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template := &models.JobTemplate{Name: req.Name}
	for _, r := range req.Requirements {
		template.Requirements = append(template.Requirements, models.JobTemplateRequirement{
			VariantType: r.VariantType,
			Count:       r.Count,
		})
	}
	created, err := a.jobs.CreateTemplate(c.Request.Context(), caller, template)
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func toLineInputs(reqs []lineInputRequest) []models.LineInput {
	lines := make([]models.LineInput, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, models.LineInput{VariantID: r.VariantID, Quantity: r.Quantity})
	}
	return lines
}
