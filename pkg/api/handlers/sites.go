package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/api/types"
	"github.com/tjcsl/director/pkg/auth"
	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/forms"
)

// SiteHandlers contains handlers for site CRUD endpoints
type SiteHandlers struct {
	siteRepo *repositories.SiteRepository
	userRepo *repositories.UserRepository
}

// NewSiteHandlers creates a new SiteHandlers instance
func NewSiteHandlers(siteRepo *repositories.SiteRepository, userRepo *repositories.UserRepository) *SiteHandlers {
	return &SiteHandlers{siteRepo: siteRepo, userRepo: userRepo}
}

// ListSites handles GET /api/v1/sites
func (h *SiteHandlers) ListSites(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("page_size", "25"))
	if err != nil || limit < 1 {
		limit = 25
	}
	if limit > 100 {
		limit = 100 // Maximum page size
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	offset := (page - 1) * limit

	totalCount, err := h.siteRepo.CountForUser(claims.UserID, claims.IsSuperuser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count sites"})
		return
	}

	sites, err := h.siteRepo.ListForUser(claims.UserID, claims.IsSuperuser, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sites"})
		return
	}

	c.JSON(http.StatusOK, types.NewPage(sites, page, limit, totalCount))
}

// GetSite handles GET /api/v1/sites/{id}
func (h *SiteHandlers) GetSite(c *gin.Context) {
	site, _, ok := loadSiteForAccess(c, h.siteRepo)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, site)
}

// CreateSite handles POST /api/v1/sites
func (h *SiteHandlers) CreateSite(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var form forms.SiteCreateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	errs := form.Validate()

	users, err := resolveSiteUsers(h.userRepo, form.Users, errs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate users"})
		return
	}

	if !errs.Ok() {
		respondFormErrors(c, errs)
		return
	}

	// The creator is always a member
	creator, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	hasCreator := false
	for _, u := range users {
		if u.ID == creator.ID {
			hasCreator = true
			break
		}
	}
	if !hasCreator {
		users = append(users, *creator)
	}

	site := form.ToModel()

	if err := h.siteRepo.Create(site, users); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "UNIQUE") {
			errs.Add("name", "A site with this name already exists.")
			respondFormErrors(c, errs)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create site"})
		return
	}

	created, err := h.siteRepo.GetByID(site.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve created site"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// RenameSite handles PUT /api/v1/sites/{id}/name
func (h *SiteHandlers) RenameSite(c *gin.Context) {
	site, _, ok := loadSiteForAccess(c, h.siteRepo)
	if !ok {
		return
	}

	var form forms.SiteNamesForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	errs := form.Validate()
	if !errs.Ok() {
		respondFormErrors(c, errs)
		return
	}

	if form.Name == site.Name {
		c.JSON(http.StatusOK, site)
		return
	}

	if existing, err := h.siteRepo.GetByName(form.Name); err == nil && existing.ID != site.ID {
		errs.Add("name", "A site with this name already exists.")
		respondFormErrors(c, errs)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check site name"})
		return
	}

	if err := h.siteRepo.Rename(site, form.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename site"})
		return
	}

	updated, err := h.siteRepo.GetByID(site.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated site"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpdateSiteMeta handles PUT /api/v1/sites/{id}/meta
func (h *SiteHandlers) UpdateSiteMeta(c *gin.Context) {
	site, _, ok := loadSiteForAccess(c, h.siteRepo)
	if !ok {
		return
	}

	var form forms.SiteMetaForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	errs := form.Validate()

	users, err := resolveSiteUsers(h.userRepo, form.Users, errs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate users"})
		return
	}

	if !errs.Ok() {
		respondFormErrors(c, errs)
		return
	}

	if err := h.siteRepo.UpdateMeta(site, form.Description, form.Purpose, users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site"})
		return
	}

	updated, err := h.siteRepo.GetByID(site.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated site"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteSite handles DELETE /api/v1/sites/{id}
func (h *SiteHandlers) DeleteSite(c *gin.Context) {
	site, _, ok := loadSiteForAccess(c, h.siteRepo)
	if !ok {
		return
	}

	if err := h.siteRepo.Delete(site.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete site"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
