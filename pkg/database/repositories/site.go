package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/database/models"
	"github.com/tjcsl/director/pkg/database/pagination"
)

type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// Create persists a new site and its membership in one transaction.
func (r *SiteRepository) Create(site *models.Site, users []models.User) error {
	if site == nil {
		return errors.New("site cannot be nil")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(site).Error; err != nil {
			return err
		}
		if len(users) > 0 {
			if err := tx.Model(site).Association("Users").Replace(users); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID loads a site with all of its relations.
func (r *SiteRepository) GetByID(id uuid.UUID) (*models.Site, error) {
	var site models.Site
	err := r.db.
		Preload("Users").
		Preload("Domains").
		Preload("Database.Host").
		Preload("DockerImage").
		Preload("ExtraPackages").
		Preload("ResourceLimits").
		Where("id = ?", id).First(&site).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *SiteRepository) GetByName(name string) (*models.Site, error) {
	var site models.Site
	err := r.db.Where("name = ?", name).First(&site).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

// ListForUser returns sites the user is a member of, or every site when the
// caller is a superuser.
func (r *SiteRepository) ListForUser(userID uuid.UUID, superuser bool, limit, offset int) ([]models.Site, error) {
	limit, offset = pagination.ClampPaginationParams(limit, offset)

	query := r.db.Preload("Users").Preload("Domains").Limit(limit).Offset(offset).Order("name ASC")
	if !superuser {
		query = query.Joins("JOIN site_users ON site_users.site_id = sites.id").
			Where("site_users.user_id = ?", userID)
	}

	var sites []models.Site
	err := query.Find(&sites).Error
	return sites, err
}

// CountForUser returns the number of sites visible to the user.
func (r *SiteRepository) CountForUser(userID uuid.UUID, superuser bool) (int64, error) {
	query := r.db.Model(&models.Site{})
	if !superuser {
		query = query.Joins("JOIN site_users ON site_users.site_id = sites.id").
			Where("site_users.user_id = ?", userID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// Rename changes the site name. The generated domain and database name are
// derived from the name, so downstream provisioning picks the change up on
// its next pass.
func (r *SiteRepository) Rename(site *models.Site, name string) error {
	return r.db.Model(site).Update("name", name).Error
}

// UpdateMeta updates the descriptive fields and replaces the membership
// list.
func (r *SiteRepository) UpdateMeta(site *models.Site, description, purpose string, users []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"description": description,
			"purpose":     purpose,
		}
		if err := tx.Model(site).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Model(site).Association("Users").Replace(users)
	})
}

// SetImage records the site's image selection and replaces its extra
// package list.
func (r *SiteRepository) SetImage(site *models.Site, imageID *uuid.UUID, writeRunScript bool, packages []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"write_run_script": writeRunScript,
		}
		// A typed-nil pointer in the map does not reliably write NULL when
		// the model carries preloaded associations; spell it out.
		if imageID != nil {
			updates["docker_image_id"] = *imageID
		} else {
			updates["docker_image_id"] = gorm.Expr("NULL")
		}
		if err := tx.Model(&models.Site{}).Where("id = ?", site.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("site_id = ?", site.ID).Delete(&models.DockerImageExtraPackage{}).Error; err != nil {
			return err
		}
		for _, name := range packages {
			pkg := models.DockerImageExtraPackage{SiteID: site.ID, Name: name}
			if err := tx.Create(&pkg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetResourceLimits upserts the site's custom resource limits row.
func (r *SiteRepository) SetResourceLimits(site *models.Site, cpus float64, memLimit string, memLimitBytes int64, notes string) (*models.ResourceLimits, error) {
	limits := &models.ResourceLimits{SiteID: site.ID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("site_id = ?", site.ID).FirstOrCreate(limits)
		if result.Error != nil {
			return result.Error
		}
		return tx.Model(limits).Updates(map[string]interface{}{
			"cpus":            cpus,
			"mem_limit":       memLimit,
			"mem_limit_bytes": memLimitBytes,
			"notes":           notes,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return limits, nil
}

// CreateDatabase provisions the site's database record on the given host.
// Returns gorm's duplicated-key error if the site already has one.
func (r *SiteRepository) CreateDatabase(site *models.Site, host *models.DatabaseHost) (*models.SiteDatabase, error) {
	db := &models.SiteDatabase{
		SiteID:         site.ID,
		DatabaseHostID: host.ID,
		Name:           models.DatabaseNameForSite(site.Name),
	}
	if err := r.db.Create(db).Error; err != nil {
		return nil, err
	}
	db.Host = host
	return db, nil
}

// Delete removes a site and its dependent rows.
func (r *SiteRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", id).Delete(&models.Domain{}).Error; err != nil {
			return err
		}
		if err := tx.Where("site_id = ?", id).Delete(&models.SiteDatabase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("site_id = ?", id).Delete(&models.DockerImageExtraPackage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("site_id = ?", id).Delete(&models.ResourceLimits{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Site{}).Error
	})
}
