package repository

import (
	"order_portal/internal/models"

	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *models.Brand) error
	GetByID(id string) (*models.Brand, error)
	GetAll(activeOnly bool) ([]models.Brand, error)
	Update(brand *models.Brand) error
	DeleteCascade(id string) error
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

func (r *brandRepository) GetByID(id string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.First(&brand, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) GetAll(activeOnly bool) ([]models.Brand, error) {
	var brands []models.Brand
	q := r.db.Order("name asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&brands).Error
	return brands, err
}

func (r *brandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

// DeleteCascade removes a brand together with its products and their SKUs in
// one transaction. Callers surface the cascade to the user before confirming.
func (r *brandRepository) DeleteCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var productIDs []string
		if err := tx.Model(&models.Product{}).Where("brand_id = ?", id).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Delete(&models.SKU{}, "product_id IN ?", productIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Product{}, "brand_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Brand{}, "id = ?", id).Error
	})
}
