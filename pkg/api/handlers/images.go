package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/api/types"
	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/forms"
)

// ImageHandlers contains handlers for container image endpoints
type ImageHandlers struct {
	siteRepo  *repositories.SiteRepository
	imageRepo *repositories.DockerImageRepository
	userRepo  *repositories.UserRepository
}

// NewImageHandlers creates a new ImageHandlers instance
func NewImageHandlers(siteRepo *repositories.SiteRepository, imageRepo *repositories.DockerImageRepository, userRepo *repositories.UserRepository) *ImageHandlers {
	return &ImageHandlers{siteRepo: siteRepo, imageRepo: imageRepo, userRepo: userRepo}
}

// ListImages handles GET /api/v1/images
func (h *ImageHandlers) ListImages(c *gin.Context) {
	images, err := h.imageRepo.ListUserVisible()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve images"})
		return
	}
	// The catalog is small; a single page holds all of it.
	c.JSON(http.StatusOK, types.NewPage(images, 1, len(images), int64(len(images))))
}

// SelectImage handles PUT /api/v1/sites/{id}/image
func (h *ImageHandlers) SelectImage(c *gin.Context) {
	site, _, ok := loadSiteForAccess(c, h.siteRepo)
	if !ok {
		return
	}

	var form forms.ImageSelectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	errs := form.Validate()

	// A blank image keeps the platform default; a named one must exist and
	// be user-visible.
	var imageID *uuid.UUID
	var runScript string
	if form.Image != "" {
		image, err := h.imageRepo.GetByName(form.Image)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs.Add("image", "Select a valid choice. "+form.Image+" is not one of the available choices.")
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve image"})
				return
			}
		} else if !image.IsUserVisible {
			errs.Add("image", "Select a valid choice. "+form.Image+" is not one of the available choices.")
		} else {
			imageID = &image.ID
			runScript = image.RunScriptTemplate
		}
	}

	if !errs.Ok() {
		respondFormErrors(c, errs)
		return
	}

	if err := h.siteRepo.SetImage(site, imageID, form.WriteRunShFile, forms.SplitPackages(form.Packages)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update image selection"})
		return
	}

	updated, err := h.siteRepo.GetByID(site.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated site"})
		return
	}

	resp := gin.H{"site": updated}
	if form.WriteRunShFile && runScript != "" {
		// The provisioner writes this file into the site directory,
		// overwriting any existing run.sh.
		resp["run_sh"] = runScript
	}

	c.JSON(http.StatusOK, resp)
}
