package forms

// Errors maps field names to the validation messages recorded against them.
// An empty map means the form is valid.
type Errors map[string][]string

// Add records a validation message against a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Ok reports whether no validation messages have been recorded.
func (e Errors) Ok() bool {
	return len(e) == 0
}
