package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/controller"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/shopspring/decimal"
)

type createMaterialRequest struct {
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit" binding:"required"`
}

func (a *API) createMaterial(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	var req createMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := a.catalog.CreateMaterial(c.Request.Context(), caller, &models.Material{
		Name: req.Name,
		Unit: req.Unit,
	})
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

type createVariantRequest struct {
	MaterialID         uuid.UUID       `json:"material_id" binding:"required"`
	Name               string          `json:"name" binding:"required"`
	VariantType        string          `json:"variant_type"`
	Color              string          `json:"color"`
	RegularPrice       decimal.Decimal `json:"regular_price"`
	PreferredPrice     decimal.Decimal `json:"preferred_price"`
	CoverageRate       decimal.Decimal `json:"coverage_rate"`
	DefaultOverageRate decimal.Decimal `json:"default_overage_rate"`
}

func (a *API) createVariant(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	var req createVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variant, err := a.catalog.CreateVariant(c.Request.Context(), caller, &models.MaterialVariant{
		MaterialID:         req.MaterialID,
		Name:               req.Name,
		VariantType:        req.VariantType,
		Color:              req.Color,
		RegularPrice:       req.RegularPrice,
		PreferredPrice:     req.PreferredPrice,
		CoverageRate:       req.CoverageRate,
		DefaultOverageRate: req.DefaultOverageRate,
	})
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, variant)
}

type updateVariantRequest struct {
	Name               *string          `json:"name"`
	Color              *string          `json:"color"`
	RegularPrice       *decimal.Decimal `json:"regular_price"`
	PreferredPrice     *decimal.Decimal `json:"preferred_price"`
	CoverageRate       *decimal.Decimal `json:"coverage_rate"`
	DefaultOverageRate *decimal.Decimal `json:"default_overage_rate"`
}

func (a *API) updateVariant(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variant, err := a.catalog.UpdateVariant(c.Request.Context(), caller, &models.VariantUpdate{
		ID:                 id,
		Name:               req.Name,
		Color:              req.Color,
		RegularPrice:       req.RegularPrice,
		PreferredPrice:     req.PreferredPrice,
		CoverageRate:       req.CoverageRate,
		DefaultOverageRate: req.DefaultOverageRate,
	})
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, variant)
}

func (a *API) deactivateVariant(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.catalog.DeactivateVariant(c.Request.Context(), caller, id); err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pricedVariantResponse flattens a variant with its resolved pricing view.
// OverageRate and OnHand are omitted entirely when no override exists, so an
// absent override is distinguishable from an override of zero.
type pricedVariantResponse struct {
	ID             uuid.UUID        `json:"id"`
	MaterialID     uuid.UUID        `json:"material_id"`
	Name           string           `json:"name"`
	VariantType    string           `json:"variant_type,omitempty"`
	Color          string           `json:"color,omitempty"`
	Unit           string           `json:"unit,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	CoverageRate   decimal.Decimal  `json:"coverage_rate"`
	OverageRate    *decimal.Decimal `json:"overage_rate,omitempty"`
	OnHand         *decimal.Decimal `json:"on_hand,omitempty"`
}

func (a *API) getVariant(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	priced, err := a.catalog.ResolveVariant(c.Request.Context(), caller, id)
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPricedResponse(priced))
}

func (a *API) listVariants(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}
	priced, err := a.catalog.ListVariants(c.Request.Context(), caller)
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	out := make([]pricedVariantResponse, 0, len(priced))
	for i := range priced {
		out = append(out, toPricedResponse(&priced[i]))
	}
	c.JSON(http.StatusOK, out)
}

func toPricedResponse(p *controller.PricedVariant) pricedVariantResponse {
	resp := pricedVariantResponse{
		ID:             p.Variant.ID,
		MaterialID:     p.Variant.MaterialID,
		Name:           p.Variant.Name,
		VariantType:    p.Variant.VariantType,
		Color:          p.Variant.Color,
		EffectivePrice: p.Pricing.Price,
		CoverageRate:   p.Variant.CoverageRate,
		OverageRate:    p.Pricing.OverageRate,
		OnHand:         p.Pricing.OnHand,
	}
	if p.Variant.Material != nil {
		resp.Unit = p.Variant.Material.Unit
	}
	return resp
}
