package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/api/types"
	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/forms"
)

// DatabaseHandlers contains handlers for database host and site database
// endpoints
type DatabaseHandlers struct {
	siteRepo *repositories.SiteRepository
	hostRepo *repositories.DatabaseHostRepository
	userRepo *repositories.UserRepository
}

// NewDatabaseHandlers creates a new DatabaseHandlers instance
func NewDatabaseHandlers(siteRepo *repositories.SiteRepository, hostRepo *repositories.DatabaseHostRepository, userRepo *repositories.UserRepository) *DatabaseHandlers {
	return &DatabaseHandlers{siteRepo: siteRepo, hostRepo: hostRepo, userRepo: userRepo}
}

// ListHosts handles GET /api/v1/database-hosts
func (h *DatabaseHandlers) ListHosts(c *gin.Context) {
	hosts, err := h.hostRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve database hosts"})
		return
	}
	// The catalog is small; a single page holds all of it.
	c.JSON(http.StatusOK, types.NewPage(hosts, 1, len(hosts), int64(len(hosts))))
}

// CreateDatabase handles POST /api/v1/sites/{id}/database
func (h *DatabaseHandlers) CreateDatabase(c *gin.Context) {
	site, _, ok := loadSiteForAccess(c, h.siteRepo)
	if !ok {
		return
	}

	var form forms.DatabaseCreateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	errs := form.Validate()
	if !errs.Ok() {
		respondFormErrors(c, errs)
		return
	}

	host, err := h.hostRepo.GetByID(form.Host)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errs.Add("host", "Select a valid choice. That choice is not one of the available choices.")
			respondFormErrors(c, errs)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve database host"})
		return
	}

	if site.Database != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Site already has a database"})
		return
	}

	db, err := h.siteRepo.CreateDatabase(site, host)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "UNIQUE") {
			c.JSON(http.StatusConflict, gin.H{"error": "Site already has a database"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create database"})
		return
	}

	c.JSON(http.StatusCreated, db)
}
