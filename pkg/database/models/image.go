package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PackageNameMaxLength caps the name of an extra package installed into a
// site's image. The forms package enforces the same limit on user input.
const PackageNameMaxLength = 64

// DockerImage is a container image sites can run on. Images with
// IsUserVisible false (base layers, deprecated images) are kept out of the
// selection form.
type DockerImage struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name              string    `gorm:"unique;not null" json:"name"`
	FriendlyName      string    `gorm:"not null" json:"friendly_name"`
	// No column default: a default tag would make GORM omit false on
	// insert, silently re-showing hidden images. Callers set this
	// explicitly.
	IsUserVisible     bool      `gorm:"not null" json:"is_user_visible"`
	RunScriptTemplate string    `json:"run_script_template,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that sets a UUID for the image before creation
func (i *DockerImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// DockerImageExtraPackage is one OS package a site wants installed on top of
// its selected image.
type DockerImageExtraPackage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;index" json:"site_id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate is a GORM hook that sets a UUID for the package before creation
func (p *DockerImageExtraPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
