package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/forms"
)

// LimitsHandlers contains handlers for per-site resource limit endpoints.
// Routes using these sit behind the superuser middleware.
type LimitsHandlers struct {
	siteRepo *repositories.SiteRepository
}

// NewLimitsHandlers creates a new LimitsHandlers instance
func NewLimitsHandlers(siteRepo *repositories.SiteRepository) *LimitsHandlers {
	return &LimitsHandlers{siteRepo: siteRepo}
}

// SetResourceLimits handles PUT /api/v1/sites/{id}/resource-limits
func (h *LimitsHandlers) SetResourceLimits(c *gin.Context) {
	site, _, ok := loadSiteForAccess(c, h.siteRepo)
	if !ok {
		return
	}

	var form forms.SiteResourceLimitsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	errs := form.Validate()
	if !errs.Ok() {
		respondFormErrors(c, errs)
		return
	}

	memLimitBytes, err := forms.ParseMemLimit(form.MemLimit)
	if err != nil {
		errs.Add("mem_limit", err.Error())
		respondFormErrors(c, errs)
		return
	}

	cpus := 0.0
	if form.CPUs != nil {
		cpus = *form.CPUs
	}

	limits, err := h.siteRepo.SetResourceLimits(site, cpus, form.MemLimit, memLimitBytes, form.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resource limits"})
		return
	}

	c.JSON(http.StatusOK, limits)
}
