package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/database/models"
	"github.com/tjcsl/director/pkg/database/pagination"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(limit, offset int) ([]models.User, error) {
	limit, offset = pagination.ClampPaginationParams(limit, offset)

	var users []models.User
	err := r.db.Limit(limit).Offset(offset).Order("username ASC").Find(&users).Error
	return users, err
}

// ListNonService returns the accounts eligible for site membership, ordered
// for stable form choices.
func (r *UserRepository) ListNonService() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("is_service = ?", false).Order("username ASC").Find(&users).Error
	return users, err
}

// GetNonServiceByIDs resolves the given IDs to non-service users. The caller
// compares the result length against the request to detect unknown or
// service-account IDs.
func (r *UserRepository) GetNonServiceByIDs(ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err := r.db.Where("id IN ? AND is_service = ?", ids, false).Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.User{}).Error
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
