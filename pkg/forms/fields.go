package forms

// Widget kinds understood by the frontend renderer.
const (
	WidgetText        = "text"
	WidgetTextarea    = "textarea"
	WidgetNumber      = "number"
	WidgetSelect      = "select"
	WidgetMultiSelect = "multiselect"
	WidgetRadioSelect = "radio"
	WidgetCheckbox    = "checkbox"
)

// FormControlClass is the CSS class applied to rendered input widgets.
const FormControlClass = "form-control"

// Choice is one selectable value for a choice field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Widget describes how a field is rendered.
type Widget struct {
	Kind  string `json:"kind"`
	Class string `json:"class,omitempty"`
}

// Field describes one form field: its binding name plus the presentation
// metadata the frontend needs to render it. Choices for fields backed by
// database records (images, hosts, users) are filled in by the handler
// serving the form description.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	LabelSuffix string   `json:"label_suffix,omitempty"`
	HelpText    string   `json:"help_text,omitempty"`
	Required    bool     `json:"required"`
	MaxLength   int      `json:"max_length,omitempty"`
	MinValue    *float64 `json:"min_value,omitempty"`
	MaxValue    *float64 `json:"max_value,omitempty"`
	Widget      Widget   `json:"widget"`
	Choices     []Choice `json:"choices,omitempty"`
}

func textInput() Widget     { return Widget{Kind: WidgetText, Class: FormControlClass} }
func textarea() Widget      { return Widget{Kind: WidgetTextarea, Class: FormControlClass} }
func numberInput() Widget   { return Widget{Kind: WidgetNumber, Class: FormControlClass} }
func selectInput() Widget   { return Widget{Kind: WidgetSelect, Class: FormControlClass} }
func multiSelect() Widget   { return Widget{Kind: WidgetMultiSelect, Class: FormControlClass} }
func radioSelect() Widget   { return Widget{Kind: WidgetRadioSelect} }
func checkboxInput() Widget { return Widget{Kind: WidgetCheckbox} }

func floatPtr(v float64) *float64 { return &v }
