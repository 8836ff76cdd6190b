package forms

// Help texts for the resource limits form.
const (
	cpusHelpText     = "Fractions of a CPU to allocate"
	memLimitHelpText = "Memory limit (bytes/KiB/MIB/GiB/KB/MB/GB)"
	notesHelpText    = "Why is this site being given custom resource limits?"
)

// SiteResourceLimitsForm sets custom container limits on a site. Admin-only;
// the route is behind the superuser middleware.
type SiteResourceLimitsForm struct {
	CPUs     *float64 `json:"cpus"`
	MemLimit string   `json:"mem_limit"`
	Notes    string   `json:"notes"`
}

// Validate checks the CPU bound and the memory limit format.
func (f *SiteResourceLimitsForm) Validate() Errors {
	errs := Errors{}
	if f.CPUs != nil {
		if err := ValidateCPULimit(*f.CPUs); err != nil {
			errs.Add("cpus", err.Error())
		}
	}
	if err := ValidateMemLimit(f.MemLimit); err != nil {
		errs.Add("mem_limit", err.Error())
	}
	return errs
}

// SiteResourceLimitsFormFields returns the presentation metadata for
// SiteResourceLimitsForm.
func SiteResourceLimitsFormFields() []Field {
	return []Field{
		{Name: "cpus", Label: "Cpus", HelpText: cpusHelpText,
			MinValue: floatPtr(0), MaxValue: floatPtr(MaxCPULimit), Widget: numberInput()},
		{Name: "mem_limit", Label: "Mem limit", MaxLength: MemLimitMaxLength,
			HelpText: memLimitHelpText, Widget: textInput()},
		{Name: "notes", Label: "Notes", HelpText: notesHelpText, Widget: textInput()},
	}
}
