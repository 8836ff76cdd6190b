package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tjcsl/director/pkg/config"
	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/forms"
)

// FormHandlers serves the presentation metadata the frontend uses to render
// forms: field lists, widget kinds, labels, help texts, and choices. Choice
// fields backed by database records get their choices resolved here so the
// frontend renders exactly what the validators will accept.
type FormHandlers struct {
	userRepo  *repositories.UserRepository
	hostRepo  *repositories.DatabaseHostRepository
	imageRepo *repositories.DockerImageRepository
	defaults  config.SitesConfig
}

// NewFormHandlers creates a new FormHandlers instance
func NewFormHandlers(userRepo *repositories.UserRepository, hostRepo *repositories.DatabaseHostRepository, imageRepo *repositories.DockerImageRepository, defaults config.SitesConfig) *FormHandlers {
	return &FormHandlers{userRepo: userRepo, hostRepo: hostRepo, imageRepo: imageRepo, defaults: defaults}
}

// GetForm handles GET /api/v1/forms/{form}
func (h *FormHandlers) GetForm(c *gin.Context) {
	var fields []forms.Field
	var err error

	switch c.Param("form") {
	case "site-create":
		fields = forms.SiteCreateFormFields()
		err = h.fillUserChoices(fields)
	case "site-names":
		fields = forms.SiteNamesFormFields()
	case "site-meta":
		fields = forms.SiteMetaFormFields()
		err = h.fillUserChoices(fields)
	case "domain":
		fields = forms.DomainFormFields()
	case "database-create":
		fields = forms.DatabaseCreateFormFields()
		err = h.fillHostChoices(fields)
	case "image-select":
		fields = forms.ImageSelectFormFields()
		err = h.fillImageChoices(fields)
	case "resource-limits":
		fields = forms.SiteResourceLimitsFormFields()
		h.appendLimitDefaults(fields)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown form"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve form choices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": c.Param("form"), "fields": fields})
}

func (h *FormHandlers) fillUserChoices(fields []forms.Field) error {
	users, err := h.userRepo.ListNonService()
	if err != nil {
		return err
	}
	choices := make([]forms.Choice, len(users))
	for i, u := range users {
		choices[i] = forms.Choice{Value: u.ID.String(), Label: u.Username}
	}
	setChoices(fields, "users", choices)
	return nil
}

func (h *FormHandlers) fillHostChoices(fields []forms.Field) error {
	hosts, err := h.hostRepo.List()
	if err != nil {
		return err
	}
	choices := make([]forms.Choice, len(hosts))
	for i, host := range hosts {
		choices[i] = forms.Choice{Value: host.ID.String(), Label: host.Label()}
	}
	setChoices(fields, "host", choices)
	return nil
}

func (h *FormHandlers) fillImageChoices(fields []forms.Field) error {
	images, err := h.imageRepo.ListUserVisible()
	if err != nil {
		return err
	}
	choices := make([]forms.Choice, len(images))
	for i, img := range images {
		choices[i] = forms.Choice{Value: img.Name, Label: img.FriendlyName}
	}
	setChoices(fields, "image", choices)
	return nil
}

// appendLimitDefaults notes the platform default limits in the help texts so
// administrators know what a blank value means.
func (h *FormHandlers) appendLimitDefaults(fields []forms.Field) {
	for i := range fields {
		switch fields[i].Name {
		case "cpus":
			fields[i].HelpText = fmt.Sprintf("%s (default %v)", fields[i].HelpText, h.defaults.DefaultCPULimit)
		case "mem_limit":
			fields[i].HelpText = fmt.Sprintf("%s (default %s)", fields[i].HelpText, h.defaults.DefaultMemLimit)
		}
	}
}

func setChoices(fields []forms.Field, name string, choices []forms.Choice) {
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Choices = choices
			return
		}
	}
}
