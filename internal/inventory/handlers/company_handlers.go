package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/resinworks/jobstock/internal/inventory/models"
)

type createCompanyRequest struct {
	Name             string `json:"name" binding:"required"`
	PreferredPricing bool   `json:"preferred_pricing"`
}

func (a *API) createCompany(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := a.companies.CreateCompany(c.Request.Context(), caller, &models.Company{
		Name:             req.Name,
		PreferredPricing: req.PreferredPricing,
	})
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (a *API) getCompany(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	company, err := a.companies.GetCompany(c.Request.Context(), caller, id)
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

type setPreferredPricingRequest struct {
	Enabled bool `json:"enabled"`
}

func (a *API) setPreferredPricing(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req setPreferredPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := a.companies.SetPreferredPricing(c.Request.Context(), caller, id, req.Enabled)
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
