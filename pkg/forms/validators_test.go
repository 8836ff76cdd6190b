package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSiteName(t *testing.T) {
	valid := []string{
		"ab",
		"mysite",
		"my-site",
		"site2",
		"2048-game",
		"a-b-c-d",
		strings.Repeat("a", 32),
	}
	for _, name := range valid {
		assert.NoError(t, ValidateSiteName(name), "expected %q to be valid", name)
	}

	invalid := []string{
		"",
		"a",
		"-site",
		"site-",
		"my--site",
		"MySite",
		"my_site",
		"my site",
		"my.site",
		strings.Repeat("a", 33),
	}
	for _, name := range invalid {
		assert.Error(t, ValidateSiteName(name), "expected %q to be invalid", name)
	}
}

func TestValidateDomain(t *testing.T) {
	valid := []string{
		"",
		"example.com",
		"my-site.example.com",
		"my_site.example.com",
		"sub.domain.example.org",
		"activities.tjhsst.edu",
		"tjhsst.edu",
	}
	for _, domain := range valid {
		assert.NoError(t, ValidateDomain(domain), "expected %q to be valid", domain)
	}

	invalid := []string{
		"sites.tjhsst.edu",
		"mysite.sites.tjhsst.edu",
		"deeply.nested.sites.tjhsst.edu",
		"bad!domain.com",
		"dom@in.com",
		strings.Repeat("a", 256),
	}
	for _, domain := range invalid {
		assert.Error(t, ValidateDomain(domain), "expected %q to be invalid", domain)
	}

	// Suffix match must be on label boundaries
	assert.NoError(t, ValidateDomain("notsites.tjhsst.edu"))
}

func TestDomainRequiresSuperuser(t *testing.T) {
	assert.True(t, DomainRequiresSuperuser("tjhsst.edu"))
	assert.True(t, DomainRequiresSuperuser("activities.tjhsst.edu"))
	assert.False(t, DomainRequiresSuperuser("example.com"))
	assert.False(t, DomainRequiresSuperuser("tjhsst.edu.example.com"))
}

func TestValidatePackages(t *testing.T) {
	assert.NoError(t, ValidatePackages(""))
	assert.NoError(t, ValidatePackages("vim"))
	assert.NoError(t, ValidatePackages("vim emacs   nano\tgit"))
	assert.NoError(t, ValidatePackages(strings.Repeat("a", 64)))

	assert.Error(t, ValidatePackages(strings.Repeat("a", 65)))
	assert.Error(t, ValidatePackages("vim "+strings.Repeat("b", 65)+" git"))
}

func TestSplitPackages(t *testing.T) {
	assert.Empty(t, SplitPackages(""))
	assert.Equal(t, []string{"vim", "git"}, SplitPackages("  vim \t git "))
}

func TestValidateCPULimit(t *testing.T) {
	assert.NoError(t, ValidateCPULimit(0))
	assert.NoError(t, ValidateCPULimit(1.5))
	assert.NoError(t, ValidateCPULimit(3))

	assert.Error(t, ValidateCPULimit(-0.1))
	assert.Error(t, ValidateCPULimit(3.01))
}

func TestValidateMemLimit(t *testing.T) {
	valid := []string{
		"",
		"123",
		"512MiB",
		"1GiB",
		"100KB",
		"2GB",
		"64 MiB",
	}
	for _, limit := range valid {
		assert.NoError(t, ValidateMemLimit(limit), "expected %q to be valid", limit)
	}

	invalid := []string{
		"512mib",
		"1TiB",
		"1.5GiB",
		"MiB",
		"12MiBx",
		"12345678901",
	}
	for _, limit := range invalid {
		assert.Error(t, ValidateMemLimit(limit), "expected %q to be invalid", limit)
	}
}

func TestParseMemLimit(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"1024", 1024},
		{"1KiB", 1024},
		{"512MiB", 512 * 1024 * 1024},
		{"1GiB", 1024 * 1024 * 1024},
		{"1KB", 1000},
		{"2GB", 2 * 1000 * 1000 * 1000},
		{"64 MiB", 64 * 1024 * 1024},
	}
	for _, tc := range cases {
		got, err := ParseMemLimit(tc.in)
		require.NoError(t, err, "ParseMemLimit(%q)", tc.in)
		assert.Equal(t, tc.want, got, "ParseMemLimit(%q)", tc.in)
	}

	_, err := ParseMemLimit("1TiB")
	assert.Error(t, err)
}
