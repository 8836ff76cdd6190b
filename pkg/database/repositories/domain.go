package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/database/models"
)

type DomainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) *DomainRepository {
	return &DomainRepository{db: db}
}

func (r *DomainRepository) GetByDomain(domain string) (*models.Domain, error) {
	var d models.Domain
	err := r.db.Where("domain = ?", domain).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DomainRepository) ListForSite(siteID uuid.UUID) ([]models.Domain, error) {
	var domains []models.Domain
	err := r.db.Where("site_id = ?", siteID).Order("domain ASC").Find(&domains).Error
	return domains, err
}

// ReplaceForSite swaps the site's custom domain list for the given one.
// Domains that survive the replacement keep their row, and with it their
// setup state.
func (r *DomainRepository) ReplaceForSite(siteID uuid.UUID, domains []string) ([]models.Domain, error) {
	keep := make(map[string]bool, len(domains))
	for _, d := range domains {
		keep[d] = true
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Domain
		if err := tx.Where("site_id = ?", siteID).Find(&existing).Error; err != nil {
			return err
		}

		have := make(map[string]bool, len(existing))
		for _, d := range existing {
			have[d.Domain] = true
			if !keep[d.Domain] {
				if err := tx.Delete(&models.Domain{}, "id = ?", d.ID).Error; err != nil {
					return err
				}
			}
		}

		// Marking each created name in have also collapses duplicate
		// entries in the request instead of tripping the unique index.
		for _, name := range domains {
			if have[name] {
				continue
			}
			d := models.Domain{SiteID: siteID, Domain: name, State: models.DomainStatePending}
			if err := tx.Create(&d).Error; err != nil {
				return err
			}
			have[name] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.ListForSite(siteID)
}
