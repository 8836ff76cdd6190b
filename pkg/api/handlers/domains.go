package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/forms"
)

// DomainHandlers contains handlers for custom domain endpoints
type DomainHandlers struct {
	siteRepo   *repositories.SiteRepository
	domainRepo *repositories.DomainRepository
	userRepo   *repositories.UserRepository
}

// SetDomainsRequest carries the full replacement list of a site's custom
// domains, the way the panel's domain formset submits them.
type SetDomainsRequest struct {
	Domains []string `json:"domains"`
}

// NewDomainHandlers creates a new DomainHandlers instance
func NewDomainHandlers(siteRepo *repositories.SiteRepository, domainRepo *repositories.DomainRepository, userRepo *repositories.UserRepository) *DomainHandlers {
	return &DomainHandlers{siteRepo: siteRepo, domainRepo: domainRepo, userRepo: userRepo}
}

// SetDomains handles PUT /api/v1/sites/{id}/domains
func (h *DomainHandlers) SetDomains(c *gin.Context) {
	site, claims, ok := loadSiteForAccess(c, h.siteRepo)
	if !ok {
		return
	}

	var req SetDomainsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	set := forms.NewDomainFormSet(req.Domains)
	results := set.Validate(claims.IsSuperuser)
	if !set.Ok(results) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"domains": results}})
		return
	}

	// Reject domains already claimed by another site
	for i, form := range set.Forms {
		if form.Domain == "" {
			continue
		}
		existing, err := h.domainRepo.GetByDomain(form.Domain)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check domain"})
			return
		}
		if existing.SiteID != site.ID {
			results[i].Add("domain", "This domain is already in use by another site.")
			c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"domains": results}})
			return
		}
	}

	updated, err := h.domainRepo.ReplaceForSite(site.ID, set.Domains())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update domains"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"domains": updated})
}
