package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// project answers GET /v1/projection?start=YYYY-MM-DD&end=YYYY-MM-DD.
// Company users project their own company; operators pass company_id.
func (a *API) project(c *gin.Context) {
	caller, ok := a.caller(c)
	if !ok {
		return
	}

	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, want YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, want YYYY-MM-DD"})
		return
	}
	// End of day so the range is inclusive of jobs installed on the end date.
	end = end.Add(24*time.Hour - time.Nanosecond)

	var companyID uuid.UUID
	if raw := c.Query("company_id"); raw != "" {
		companyID, err = uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company_id"})
			return
		}
	} else if caller.CompanyID != nil {
		companyID = *caller.CompanyID
	}

	items, err := a.projection.Project(c.Request.Context(), caller, companyID, start, end)
	if err != nil {
		a.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
