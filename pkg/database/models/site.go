package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Site name constraints enforced by the forms package and mirrored in the
// column definition.
const (
	SiteNameMinLength = 2
	SiteNameMaxLength = 32
)

// Site types. Static sites are served directly; dynamic sites run a custom
// server process (Node.js, Django, ...) inside their container.
const (
	SiteTypeStatic  = "static"
	SiteTypeDynamic = "dynamic"
)

// Site purposes, used for bookkeeping and cleanup policies.
const (
	SitePurposeProject  = "project"
	SitePurposeActivity = "activity"
	SitePurposeUser     = "user"
	SitePurposeOther    = "other"
)

// SiteTypes lists the valid values for Site.Type.
var SiteTypes = []string{SiteTypeStatic, SiteTypeDynamic}

// SitePurposes lists the valid values for Site.Purpose.
var SitePurposes = []string{SitePurposeProject, SitePurposeActivity, SitePurposeUser, SitePurposeOther}

// Site represents a hosted web app instance.
type Site struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:32;unique;not null" json:"name"`
	Description string    `json:"description"`
	Type        string    `gorm:"not null;default:static" json:"type"`
	Purpose     string    `gorm:"not null;default:project" json:"purpose"`

	// Container image selection. Nil means the platform default image.
	DockerImageID  *uuid.UUID `gorm:"type:uuid" json:"docker_image_id,omitempty"`
	WriteRunScript bool       `gorm:"default:false" json:"write_run_script"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Relationships
	Users          []User                    `gorm:"many2many:site_users" json:"users,omitempty"`
	Domains        []Domain                  `gorm:"foreignKey:SiteID" json:"domains,omitempty"`
	Database       *SiteDatabase             `gorm:"foreignKey:SiteID" json:"database,omitempty"`
	DockerImage    *DockerImage              `gorm:"foreignKey:DockerImageID" json:"docker_image,omitempty"`
	ExtraPackages  []DockerImageExtraPackage `gorm:"foreignKey:SiteID" json:"extra_packages,omitempty"`
	ResourceLimits *ResourceLimits           `gorm:"foreignKey:SiteID" json:"resource_limits,omitempty"`
}

// BeforeCreate is a GORM hook that sets a UUID for the site before creation
func (s *Site) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// HasUser reports whether the given user is a member of the site. Membership
// must be preloaded.
func (s *Site) HasUser(userID uuid.UUID) bool {
	for _, u := range s.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// GeneratedDomain returns the automatically provisioned domain for the site,
// derived from its name.
func (s *Site) GeneratedDomain(suffix string) string {
	return s.Name + "." + suffix
}

// ResourceLimits holds per-site overrides of the platform container limits.
// A zero CPUs value or blank MemLimit means the platform default applies.
type ResourceLimits struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SiteID        uuid.UUID `gorm:"type:uuid;unique;not null" json:"site_id"`
	CPUs          float64   `json:"cpus"`
	MemLimit      string    `gorm:"size:10" json:"mem_limit"`
	MemLimitBytes int64     `json:"mem_limit_bytes"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that sets a UUID for the limits row before creation
func (r *ResourceLimits) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
