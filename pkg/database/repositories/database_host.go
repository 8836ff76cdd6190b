package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/database/models"
)

type DatabaseHostRepository struct {
	db *gorm.DB
}

func NewDatabaseHostRepository(db *gorm.DB) *DatabaseHostRepository {
	return &DatabaseHostRepository{db: db}
}

func (r *DatabaseHostRepository) Create(host *models.DatabaseHost) error {
	if host == nil {
		return errors.New("database host cannot be nil")
	}
	return r.db.Create(host).Error
}

func (r *DatabaseHostRepository) GetByID(id uuid.UUID) (*models.DatabaseHost, error) {
	var host models.DatabaseHost
	err := r.db.Where("id = ?", id).First(&host).Error
	if err != nil {
		return nil, err
	}
	return &host, nil
}

func (r *DatabaseHostRepository) List() ([]models.DatabaseHost, error) {
	var hosts []models.DatabaseHost
	err := r.db.Order("hostname ASC").Find(&hosts).Error
	return hosts, err
}

func (r *DatabaseHostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.DatabaseHost{}).Count(&count).Error
	return count, err
}
