package forms

import "github.com/tjcsl/director/pkg/database/models"

// DomainForm carries one custom domain entry.
type DomainForm struct {
	Domain string `json:"domain"`
}

// Validate checks the domain string. Superuser status comes from the
// caller's JWT claims; only administrators may register domains under the
// restricted suffix.
func (f *DomainForm) Validate(superuser bool) Errors {
	errs := Errors{}
	if err := ValidateDomain(f.Domain); err != nil {
		errs.Add("domain", err.Error())
	}
	if !superuser && f.Domain != "" && DomainRequiresSuperuser(f.Domain) {
		errs.Add("domain", domainRestrictedMessage)
	}
	return errs
}

// DomainFormSet validates a batch of domain entries, the way the panel
// submits a site's whole custom domain list at once.
type DomainFormSet struct {
	Forms []DomainForm
}

// NewDomainFormSet builds a formset from raw domain strings.
func NewDomainFormSet(domains []string) *DomainFormSet {
	set := &DomainFormSet{Forms: make([]DomainForm, len(domains))}
	for i, d := range domains {
		set.Forms[i] = DomainForm{Domain: d}
	}
	return set
}

// Validate runs every entry's validation and returns the per-entry errors,
// indexed in parallel with Forms.
func (s *DomainFormSet) Validate(superuser bool) []Errors {
	all := make([]Errors, len(s.Forms))
	for i := range s.Forms {
		all[i] = s.Forms[i].Validate(superuser)
	}
	return all
}

// Ok reports whether every entry validated cleanly.
func (s *DomainFormSet) Ok(results []Errors) bool {
	for _, errs := range results {
		if !errs.Ok() {
			return false
		}
	}
	return true
}

// Domains returns the non-blank domain strings in submission order.
func (s *DomainFormSet) Domains() []string {
	out := make([]string, 0, len(s.Forms))
	for _, f := range s.Forms {
		if f.Domain != "" {
			out = append(out, f.Domain)
		}
	}
	return out
}

// DomainFormFields returns the presentation metadata for DomainForm.
func DomainFormFields() []Field {
	return []Field{
		{Name: "domain", Label: "Custom domain", MaxLength: models.DomainMaxLength,
			Widget: textInput()},
	}
}
