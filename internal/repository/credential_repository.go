package repository

import (
	"order_portal/internal/models"

	"gorm.io/gorm"
)

type CredentialRepository interface {
	Create(cred *models.Credential) error
	GetByEmail(email string) (*models.Credential, error)
	Delete(id string) error
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(cred *models.Credential) error {
	return r.db.Create(cred).Error
}

func (r *credentialRepository) GetByEmail(email string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.First(&cred, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) Delete(id string) error {
	return r.db.Delete(&models.Credential{}, "id = ?", id).Error
}
