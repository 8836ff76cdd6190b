// Package handlers implements the HTTP handlers for the Director admin API.
// Request bodies bind onto the forms package's form structs; validation
// failures come back as field-keyed message lists so the frontend can attach
// them to the rendered widgets.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/auth"
	"github.com/tjcsl/director/pkg/database/models"
	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/forms"
)

// respondFormErrors sends the standard 400 envelope for form validation
// failures.
func respondFormErrors(c *gin.Context, errs forms.Errors) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// parseIDParam parses the :id route parameter as a UUID, responding 400 on
// failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// loadSiteForAccess fetches the site and enforces membership: members and
// superusers pass, everyone else gets 404 so site names are not leaked.
func loadSiteForAccess(c *gin.Context, siteRepo *repositories.SiteRepository) (*models.Site, *auth.Claims, bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return nil, nil, false
	}

	claims, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, nil, false
	}

	site, err := siteRepo.GetByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return nil, nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve site"})
		return nil, nil, false
	}

	if !claims.IsSuperuser && !site.HasUser(claims.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return nil, nil, false
	}

	return site, claims, true
}

// resolveSiteUsers maps requested member IDs to user rows, recording a form
// error when an ID is unknown or names a service account.
func resolveSiteUsers(userRepo *repositories.UserRepository, ids []uuid.UUID, errs forms.Errors) ([]models.User, error) {
	users, err := userRepo.GetNonServiceByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(uniqueIDs(ids)) {
		errs.Add("users", "Select a valid choice. One of the selected users is not available.")
	}
	return users, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
