package repository

import (
	"order_portal/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	GetByBrandID(brandID string, activeOnly bool) ([]models.Product, error)
	GetAll() ([]models.Product, error)
	Update(product *models.Product) error
	DeleteCascade(id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Brand").Preload("SKUs").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByBrandID(brandID string, activeOnly bool) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Preload("SKUs").Where("brand_id = ?", brandID).Order("name asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Brand").Preload("SKUs").Order("name asc").Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// DeleteCascade removes a product and its SKUs.
func (r *productRepository) DeleteCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SKU{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}
