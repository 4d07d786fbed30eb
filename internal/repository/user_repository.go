package repository

import (
	"order_portal/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll() ([]models.User, error)
	GetByRole(role string) ([]models.User, error)
	GetRetailersBySalesman(salesmanID string) ([]models.User, error)
	Update(user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *userRepository) GetByRole(role string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *userRepository) GetRetailersBySalesman(salesmanID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ? AND assigned_salesman_id = ?", string(models.Retailer), salesmanID).
		Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
