package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supported database host kinds.
const (
	DBMSPostgres = "postgres"
	DBMSMySQL    = "mysql"
)

// DatabaseHost is an admin-managed database server that site databases can
// be provisioned on.
type DatabaseHost struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Hostname  string    `gorm:"not null" json:"hostname"`
	Port      int       `gorm:"not null" json:"port"`
	DBMS      string    `gorm:"not null" json:"dbms"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that sets a UUID for the host before creation
func (h *DatabaseHost) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// Label returns the display string used for host choices in forms.
func (h *DatabaseHost) Label() string {
	return h.DBMS + " (" + h.Hostname + ")"
}

// SiteDatabase is the single database provisioned for a site on one of the
// available hosts.
type SiteDatabase struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SiteID         uuid.UUID `gorm:"type:uuid;unique;not null" json:"site_id"`
	DatabaseHostID uuid.UUID `gorm:"type:uuid;not null" json:"database_host_id"`
	Name           string    `gorm:"not null" json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Host *DatabaseHost `gorm:"foreignKey:DatabaseHostID" json:"host,omitempty"`
}

// BeforeCreate is a GORM hook that sets a UUID for the database before creation
func (d *SiteDatabase) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DatabaseNameForSite derives the database name from the site name. Dashes
// are not valid in unquoted identifiers on either DBMS, so they become
// underscores.
func DatabaseNameForSite(siteName string) string {
	return "site_" + strings.ReplaceAll(siteName, "-", "_")
}
