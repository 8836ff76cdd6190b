package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DomainMaxLength caps custom domain strings, matching the column size.
const DomainMaxLength = 255

// Domain setup states. A domain is created pending and flips to active once
// the balancer config for it has been written out.
const (
	DomainStatePending = "pending"
	DomainStateActive  = "active"
)

// Domain is a custom domain attached to a site, in addition to the
// automatically generated <name>.sites.tjhsst.edu one.
type Domain struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;index" json:"site_id"`
	Domain    string    `gorm:"size:255;unique;not null" json:"domain"`
	State     string    `gorm:"not null;default:pending" json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that sets a UUID for the domain before creation
func (d *Domain) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
