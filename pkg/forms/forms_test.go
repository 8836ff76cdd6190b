package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjcsl/director/pkg/database/models"
)

func TestSiteCreateFormValidate(t *testing.T) {
	form := SiteCreateForm{
		Name:    "my-site",
		Type:    models.SiteTypeDynamic,
		Purpose: models.SitePurposeProject,
	}
	assert.True(t, form.Validate().Ok())

	form.Name = "My Site"
	errs := form.Validate()
	assert.False(t, errs.Ok())
	assert.Contains(t, errs, "name")

	form = SiteCreateForm{Name: "ok-name", Type: "serverless", Purpose: "world-domination"}
	errs = form.Validate()
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "purpose")
}

func TestSiteCreateFormToModel(t *testing.T) {
	form := SiteCreateForm{
		Name:        "my-site",
		Description: "a site",
		Type:        models.SiteTypeStatic,
		Purpose:     models.SitePurposeActivity,
	}
	site := form.ToModel()
	assert.Equal(t, "my-site", site.Name)
	assert.Equal(t, models.SiteTypeStatic, site.Type)
	assert.Equal(t, models.SitePurposeActivity, site.Purpose)
}

func TestNewSiteNamesForm(t *testing.T) {
	site := &models.Site{Name: "existing"}
	form := NewSiteNamesForm(site)
	assert.Equal(t, "existing", form.Name)
	assert.True(t, form.Validate().Ok())
}

func TestDomainFormValidate(t *testing.T) {
	form := DomainForm{Domain: "example.com"}
	assert.True(t, form.Validate(false).Ok())

	// Restricted suffix requires a superuser
	form = DomainForm{Domain: "activities.tjhsst.edu"}
	errs := form.Validate(false)
	require.Contains(t, errs, "domain")
	assert.Equal(t, []string{"Only administrators can add tjhsst.edu domains"}, errs["domain"])
	assert.True(t, form.Validate(true).Ok())

	// The generated suffix is rejected even for superusers
	form = DomainForm{Domain: "mysite.sites.tjhsst.edu"}
	assert.False(t, form.Validate(true).Ok())

	// Blank entries are allowed; the formset drops them
	form = DomainForm{}
	assert.True(t, form.Validate(false).Ok())
}

func TestDomainFormSet(t *testing.T) {
	set := NewDomainFormSet([]string{"example.com", "", "bad!domain"})
	results := set.Validate(false)
	require.Len(t, results, 3)
	assert.True(t, results[0].Ok())
	assert.True(t, results[1].Ok())
	assert.False(t, results[2].Ok())
	assert.False(t, set.Ok(results))

	set = NewDomainFormSet([]string{"example.com", "", "other.org"})
	results = set.Validate(false)
	assert.True(t, set.Ok(results))
	assert.Equal(t, []string{"example.com", "other.org"}, set.Domains())
}

func TestImageSelectFormValidate(t *testing.T) {
	form := ImageSelectForm{Image: "director/node", Packages: "vim git"}
	assert.True(t, form.Validate().Ok())

	form.Packages = "vim " + longPackageName()
	errs := form.Validate()
	assert.Contains(t, errs, "packages")
	assert.Equal(t, []string{"One of your package names is too long"}, errs["packages"])
}

func longPackageName() string {
	b := make([]byte, models.PackageNameMaxLength+1)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}

func TestSiteResourceLimitsFormValidate(t *testing.T) {
	cpus := 2.5
	form := SiteResourceLimitsForm{CPUs: &cpus, MemLimit: "512MiB", Notes: "heavy build jobs"}
	assert.True(t, form.Validate().Ok())

	// Unset fields mean platform defaults
	form = SiteResourceLimitsForm{}
	assert.True(t, form.Validate().Ok())

	over := 4.0
	form = SiteResourceLimitsForm{CPUs: &over, MemLimit: "1PiB"}
	errs := form.Validate()
	assert.Contains(t, errs, "cpus")
	assert.Contains(t, errs, "mem_limit")
}

func TestDatabaseCreateFormValidate(t *testing.T) {
	form := DatabaseCreateForm{}
	errs := form.Validate()
	assert.Contains(t, errs, "host")
}

func TestFormFieldsMetadata(t *testing.T) {
	fields := SiteCreateFormFields()
	byName := fieldMap(fields)

	require.Contains(t, byName, "name")
	assert.Equal(t, WidgetText, byName["name"].Widget.Kind)
	assert.Equal(t, FormControlClass, byName["name"].Widget.Class)
	assert.Equal(t, models.SiteNameMaxLength, byName["name"].MaxLength)
	assert.NotEmpty(t, byName["name"].HelpText)

	require.Contains(t, byName, "type")
	assert.Equal(t, WidgetSelect, byName["type"].Widget.Kind)
	assert.Len(t, byName["type"].Choices, 2)

	limits := fieldMap(SiteResourceLimitsFormFields())
	require.Contains(t, limits, "cpus")
	require.NotNil(t, limits["cpus"].MinValue)
	require.NotNil(t, limits["cpus"].MaxValue)
	assert.Equal(t, 0.0, *limits["cpus"].MinValue)
	assert.Equal(t, MaxCPULimit, *limits["cpus"].MaxValue)

	images := fieldMap(ImageSelectFormFields())
	require.Contains(t, images, "write_run_sh_file")
	assert.Equal(t, WidgetCheckbox, images["write_run_sh_file"].Widget.Kind)
	assert.Equal(t, "?", images["write_run_sh_file"].LabelSuffix)

	hosts := fieldMap(DatabaseCreateFormFields())
	require.Contains(t, hosts, "host")
	assert.Equal(t, WidgetRadioSelect, hosts["host"].Widget.Kind)
}

func fieldMap(fields []Field) map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}
