package forms

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tjcsl/director/pkg/database/models"
)

// Help texts shown under site form fields.
const (
	siteNameHelpText = "Can only contain lowercase letters, numbers, and dashes. Names cannot start " +
		"with a number, and dashes must go between two non-dash characters. Maximum length of " +
		"32 characters."
	siteTypeHelpText = "If you want to run a custom server, like Node.js or Django, you will need to " +
		"set this to Dynamic."
)

// SiteCreateForm collects everything needed to provision a new site.
type SiteCreateForm struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Purpose     string      `json:"purpose"`
	Users       []uuid.UUID `json:"users"`
}

// Validate checks the site fields. User IDs are checked against the database
// by the handler; everything else is validated here.
func (f *SiteCreateForm) Validate() Errors {
	errs := Errors{}
	if err := ValidateSiteName(f.Name); err != nil {
		errs.Add("name", err.Error())
	}
	validateSiteChoices(errs, f.Type, f.Purpose)
	return errs
}

// ToModel builds the Site record from validated form data. Membership is
// attached by the handler after resolving user IDs.
func (f *SiteCreateForm) ToModel() *models.Site {
	return &models.Site{
		Name:        f.Name,
		Description: f.Description,
		Type:        f.Type,
		Purpose:     f.Purpose,
	}
}

func validateSiteChoices(errs Errors, siteType, purpose string) {
	if !choiceAllowed(siteType, models.SiteTypes) {
		errs.Add("type", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", siteType))
	}
	if !choiceAllowed(purpose, models.SitePurposes) {
		errs.Add("purpose", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", purpose))
	}
}

func choiceAllowed(value string, allowed []string) bool {
	for _, v := range allowed {
		if value == v {
			return true
		}
	}
	return false
}

// SiteCreateFormFields returns the presentation metadata for SiteCreateForm.
// The users field choices are resolved by the handler.
func SiteCreateFormFields() []Field {
	return []Field{
		{Name: "name", Label: "Name", Required: true, MaxLength: models.SiteNameMaxLength,
			HelpText: siteNameHelpText, Widget: textInput()},
		{Name: "description", Label: "Description", Widget: textInput()},
		{Name: "type", Label: "Type", Required: true, HelpText: siteTypeHelpText,
			Widget: selectInput(), Choices: siteTypeChoices()},
		{Name: "purpose", Label: "Purpose", Required: true,
			Widget: selectInput(), Choices: sitePurposeChoices()},
		{Name: "users", Label: "Users", Widget: multiSelect()},
	}
}

// SiteNamesForm carries a site rename.
type SiteNamesForm struct {
	Name string `json:"name"`
}

// NewSiteNamesForm builds the rename form pre-filled from an existing site.
func NewSiteNamesForm(site *models.Site) *SiteNamesForm {
	return &SiteNamesForm{Name: site.Name}
}

// Validate checks the new name.
func (f *SiteNamesForm) Validate() Errors {
	errs := Errors{}
	if err := ValidateSiteName(f.Name); err != nil {
		errs.Add("name", err.Error())
	}
	return errs
}

// SiteNamesFormFields returns the presentation metadata for SiteNamesForm.
func SiteNamesFormFields() []Field {
	return []Field{
		{Name: "name", Label: "Name", Required: true, MaxLength: models.SiteNameMaxLength,
			Widget: textInput()},
	}
}

// SiteMetaForm edits the descriptive fields of a site. The name is changed
// through SiteNamesForm because renames cascade into the generated domain.
type SiteMetaForm struct {
	Description string      `json:"description"`
	Purpose     string      `json:"purpose"`
	Users       []uuid.UUID `json:"users"`
}

// Validate checks the purpose choice.
func (f *SiteMetaForm) Validate() Errors {
	errs := Errors{}
	if !choiceAllowed(f.Purpose, models.SitePurposes) {
		errs.Add("purpose", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", f.Purpose))
	}
	return errs
}

// SiteMetaFormFields returns the presentation metadata for SiteMetaForm.
func SiteMetaFormFields() []Field {
	return []Field{
		{Name: "description", Label: "Description", Widget: textarea()},
		{Name: "purpose", Label: "Purpose", Required: true,
			Widget: selectInput(), Choices: sitePurposeChoices()},
		{Name: "users", Label: "Users", Widget: multiSelect()},
	}
}

func siteTypeChoices() []Choice {
	return []Choice{
		{Value: models.SiteTypeStatic, Label: "Static"},
		{Value: models.SiteTypeDynamic, Label: "Dynamic"},
	}
}

func sitePurposeChoices() []Choice {
	return []Choice{
		{Value: models.SitePurposeProject, Label: "Project"},
		{Value: models.SitePurposeActivity, Label: "Activity"},
		{Value: models.SitePurposeUser, Label: "User"},
		{Value: models.SitePurposeOther, Label: "Other"},
	}
}
