// Package forms defines the admin panel's form layer: field declarations
// with widget metadata for rendering, and the validation rules applied to
// them. Handlers bind request bodies onto these forms and reject anything a
// Validate method records errors against.
package forms

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/docker/go-units"

	"github.com/tjcsl/director/pkg/database/models"
)

// Reserved domain suffixes. Every site gets a generated
// <name>.sites.tjhsst.edu domain, so user-supplied domains may never claim
// that suffix; the wider tjhsst.edu suffix is reserved for administrators.
const (
	GeneratedDomainSuffix  = "sites.tjhsst.edu"
	RestrictedDomainSuffix = "tjhsst.edu"
)

// MaxCPULimit is the largest CPU share a site may be granted.
const MaxCPULimit = 3.0

// MemLimitMaxLength caps the human-readable memory limit string.
const MemLimitMaxLength = 10

var (
	// siteNameRegex permits lowercase alphanumerics with single interior
	// dashes. Dashes may not lead, trail, or repeat.
	siteNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// domainCharsRegex permits the character set accepted for custom
	// domains. The reserved-suffix rule is checked separately because RE2
	// has no negative lookahead.
	domainCharsRegex = regexp.MustCompile(`^[0-9a-zA-Z_\- .]+$`)

	// memLimitRegex permits a blank value or an integer with an optional
	// binary (KiB/MiB/GiB) or decimal (KB/MB/GB) suffix.
	memLimitRegex = regexp.MustCompile(`^(\d+(\s*[KMG]i?B)?)?$`)
)

// Validation messages shown next to form fields. These are user-facing copy;
// keep them in sync with the frontend help texts.
const (
	siteNameMessage = "Site names must consist of lowercase letters, numbers, and dashes. Dashes " +
		"must go between two non-dash characters."
	domainReservedMessage = "You can only have one " + GeneratedDomainSuffix + " domain, the " +
		"automatically generated one that matches the name of your site."
	domainRestrictedMessage = "Only administrators can add " + RestrictedDomainSuffix + " domains"
	packageTooLongMessage   = "One of your package names is too long"
	memLimitMessage         = "Must be either 1) blank for the default limit or 2) a number followed by " +
		"one of the suffixes KiB, MiB, or GiB (powers of 1024) or KB, MB, GB (powers of 1000)."
)

// ValidateSiteName checks a site name against the length and character
// rules.
func ValidateSiteName(name string) error {
	if len(name) < models.SiteNameMinLength {
		return fmt.Errorf("ensure this value has at least %d characters", models.SiteNameMinLength)
	}
	if len(name) > models.SiteNameMaxLength {
		return fmt.Errorf("ensure this value has at most %d characters", models.SiteNameMaxLength)
	}
	if !siteNameRegex.MatchString(name) {
		return errors.New(siteNameMessage)
	}
	return nil
}

// ValidateDomain checks a custom domain string. A blank domain is allowed;
// the caller drops blank entries. The generated sites.tjhsst.edu suffix is
// rejected for everyone since those domains are derived from site names, not
// registered by hand.
func ValidateDomain(domain string) error {
	if domain == "" {
		return nil
	}
	if len(domain) > models.DomainMaxLength {
		return fmt.Errorf("ensure this value has at most %d characters", models.DomainMaxLength)
	}
	if !domainCharsRegex.MatchString(domain) {
		return errors.New(domainReservedMessage)
	}
	if domain == GeneratedDomainSuffix || strings.HasSuffix(domain, "."+GeneratedDomainSuffix) {
		return errors.New(domainReservedMessage)
	}
	return nil
}

// DomainRequiresSuperuser reports whether only administrators may register
// the given domain.
func DomainRequiresSuperuser(domain string) bool {
	return strings.HasSuffix(domain, RestrictedDomainSuffix)
}

// ValidatePackages checks a whitespace-separated package list. Each package
// name must fit in the extra-package name column.
func ValidatePackages(packages string) error {
	for _, name := range strings.Fields(packages) {
		if len(name) > models.PackageNameMaxLength {
			return errors.New(packageTooLongMessage)
		}
	}
	return nil
}

// SplitPackages tokenizes a validated package list.
func SplitPackages(packages string) []string {
	return strings.Fields(packages)
}

// ValidateCPULimit checks a CPU share value. Zero means "use the platform
// default" and is accepted.
func ValidateCPULimit(cpus float64) error {
	if cpus < 0 {
		return errors.New("ensure this value is greater than or equal to 0")
	}
	if cpus > MaxCPULimit {
		return fmt.Errorf("ensure this value is less than or equal to %v", MaxCPULimit)
	}
	return nil
}

// ValidateMemLimit checks a human-readable memory limit string. Blank means
// the default limit.
func ValidateMemLimit(limit string) error {
	if len(limit) > MemLimitMaxLength {
		return fmt.Errorf("ensure this value has at most %d characters", MemLimitMaxLength)
	}
	if !memLimitRegex.MatchString(limit) {
		return errors.New(memLimitMessage)
	}
	return nil
}

// ParseMemLimit converts a validated memory limit string to bytes. Binary
// suffixes (KiB/MiB/GiB) are powers of 1024, decimal ones (KB/MB/GB) powers
// of 1000, and a bare number is bytes. Returns 0 for a blank limit.
func ParseMemLimit(limit string) (int64, error) {
	limit = strings.TrimSpace(limit)
	if limit == "" {
		return 0, nil
	}
	if err := ValidateMemLimit(limit); err != nil {
		return 0, err
	}
	// go-units tolerates at most one space before the suffix; the regex
	// above allows any run, so collapse them before parsing.
	compact := strings.ReplaceAll(limit, " ", "")
	compact = strings.ReplaceAll(compact, "\t", "")
	if strings.Contains(compact, "i") {
		return units.RAMInBytes(compact)
	}
	return units.FromHumanSize(compact)
}
