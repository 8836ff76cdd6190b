package forms

// Help texts for the image selection form.
const (
	writeRunScriptHelpText = "Based on the image you selected, this will write a sample run.sh file.\n" +
		"WARNING: If you've already created a run.sh file, it will be overwritten."
	packagesHelpText = "This should be a space-separated list of packages to install in the image."
)

// ImageSelectForm picks the container image a site runs on, optionally with
// extra packages and a sample run.sh.
type ImageSelectForm struct {
	Image          string `json:"image"`
	WriteRunShFile bool   `json:"write_run_sh_file"`
	Packages       string `json:"packages"`
}

// Validate checks the package list. Whether the named image exists and is
// user-visible is checked by the handler.
func (f *ImageSelectForm) Validate() Errors {
	errs := Errors{}
	if err := ValidatePackages(f.Packages); err != nil {
		errs.Add("packages", err.Error())
	}
	return errs
}

// ImageSelectFormFields returns the presentation metadata for
// ImageSelectForm. Image choices are resolved from the database by the
// handler, limited to user-visible images ordered by friendly name.
func ImageSelectFormFields() []Field {
	return []Field{
		{Name: "image", Label: "Image", Widget: radioSelect()},
		{Name: "write_run_sh_file", Label: "Write run.sh file", LabelSuffix: "?",
			HelpText: writeRunScriptHelpText, Widget: checkboxInput()},
		{Name: "packages", Label: "Packages", HelpText: packagesHelpText,
			Widget: textInput()},
	}
}
