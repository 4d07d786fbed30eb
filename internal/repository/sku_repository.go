package repository

import (
	"order_portal/internal/models"

	"gorm.io/gorm"
)

type SKURepository interface {
	Create(sku *models.SKU) error
	CreateBatch(skus []models.SKU) error
	GetByID(id string) (*models.SKU, error)
	GetByProductID(productID string, activeOnly bool) ([]models.SKU, error)
	GetAll() ([]models.SKU, error)
	Search(query string) ([]models.SKU, error)
	Update(sku *models.SKU) error
	Delete(id string) error
}

type skuRepository struct {
	db *gorm.DB
}

func NewSKURepository(db *gorm.DB) SKURepository {
	return &skuRepository{db: db}
}

func (r *skuRepository) Create(sku *models.SKU) error {
	return r.db.Create(sku).Error
}

func (r *skuRepository) CreateBatch(skus []models.SKU) error {
	return r.db.Create(&skus).Error
}

func (r *skuRepository) GetByID(id string) (*models.SKU, error) {
	var sku models.SKU
	err := r.db.Preload("Product").Preload("Product.Brand").First(&sku, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sku, nil
}

func (r *skuRepository) GetByProductID(productID string, activeOnly bool) ([]models.SKU, error) {
	var skus []models.SKU
	q := r.db.Where("product_id = ?", productID).Order("variant_label asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&skus).Error
	return skus, err
}

func (r *skuRepository) GetAll() ([]models.SKU, error) {
	var skus []models.SKU
	err := r.db.Preload("Product").Preload("Product.Brand").Order("sku_code asc").Find(&skus).Error
	return skus, err
}

// Search matches the query against SKU codes and product/brand names,
// active rows only.
func (r *skuRepository) Search(query string) ([]models.SKU, error) {
	var skus []models.SKU
	pattern := "%" + query + "%"
	err := r.db.
		Joins("JOIN products ON products.id = skus.product_id").
		Joins("JOIN brands ON brands.id = products.brand_id").
		Where("skus.is_active = ? AND products.is_active = ? AND brands.is_active = ?", true, true, true).
		Where("skus.sku_code ILIKE ? OR products.name ILIKE ? OR brands.name ILIKE ?", pattern, pattern, pattern).
		Preload("Product").Preload("Product.Brand").
		Find(&skus).Error
	return skus, err
}

func (r *skuRepository) Update(sku *models.SKU) error {
	return r.db.Save(sku).Error
}

func (r *skuRepository) Delete(id string) error {
	return r.db.Delete(&models.SKU{}, "id = ?", id).Error
}
