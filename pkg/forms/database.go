package forms

import "github.com/google/uuid"

// DatabaseCreateForm picks which database host a site's database is
// provisioned on.
type DatabaseCreateForm struct {
	Host uuid.UUID `json:"host"`
}

// Validate checks that a host was chosen. Host existence is checked by the
// handler.
func (f *DatabaseCreateForm) Validate() Errors {
	errs := Errors{}
	if f.Host == uuid.Nil {
		errs.Add("host", "This field is required.")
	}
	return errs
}

// DatabaseCreateFormFields returns the presentation metadata for
// DatabaseCreateForm. Host choices are resolved from the database by the
// handler; there is no empty choice.
func DatabaseCreateFormFields() []Field {
	return []Field{
		{Name: "host", Label: "Host", Required: true, Widget: radioSelect()},
	}
}
