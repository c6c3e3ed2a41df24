package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type upsertOverageRequest struct {
	CompanyID uuid.UUID       `json:"company_id"`
	Rate      decimal.Decimal `json:"rate"`
}

func (a *API) upsertOverageRate(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	variantID, ok := parseUUIDParam(c, "variantID")
	if !ok {
		return
	}
	var req upsertOverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	companyID := req.CompanyID
	if companyID == uuid.Nil && caller.CompanyID != nil {
		companyID = *caller.CompanyID
	}

	if err := a.overrides.UpsertOverageRate(c.Request.Context(), caller, companyID, variantID, req.Rate); err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type upsertQuantityRequest struct {
	CompanyID uuid.UUID       `json:"company_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

func (a *API) upsertQuantity(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	variantID, ok := parseUUIDParam(c, "variantID")
	if !ok {
		return
	}
	var req upsertQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	companyID := req.CompanyID
	if companyID == uuid.Nil && caller.CompanyID != nil {
		companyID = *caller.CompanyID
	}

	if err := a.overrides.UpsertQuantity(c.Request.Context(), caller, companyID, variantID, req.Quantity); err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
