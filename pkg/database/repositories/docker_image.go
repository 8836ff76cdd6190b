package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/database/models"
)

type DockerImageRepository struct {
	db *gorm.DB
}

func NewDockerImageRepository(db *gorm.DB) *DockerImageRepository {
	return &DockerImageRepository{db: db}
}

func (r *DockerImageRepository) Create(image *models.DockerImage) error {
	if image == nil {
		return errors.New("image cannot be nil")
	}
	return r.db.Create(image).Error
}

func (r *DockerImageRepository) GetByID(id uuid.UUID) (*models.DockerImage, error) {
	var image models.DockerImage
	err := r.db.Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *DockerImageRepository) GetByName(name string) (*models.DockerImage, error) {
	var image models.DockerImage
	err := r.db.Where("name = ?", name).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ListUserVisible returns the images offered in the selection form, ordered
// by friendly name the way the form presents them.
func (r *DockerImageRepository) ListUserVisible() ([]models.DockerImage, error) {
	var images []models.DockerImage
	err := r.db.Where("is_user_visible = ?", true).Order("friendly_name ASC").Find(&images).Error
	return images, err
}

func (r *DockerImageRepository) List() ([]models.DockerImage, error) {
	var images []models.DockerImage
	err := r.db.Order("friendly_name ASC").Find(&images).Error
	return images, err
}
