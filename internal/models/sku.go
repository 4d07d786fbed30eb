package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SKU is the variant level of the catalog (pack size and pricing).
// DealerPrice is what retailers pay; MRP is the printed list price.
type SKU struct {
	ID           string          `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID    string          `json:"product_id" gorm:"type:uuid;not null;index"`
	SKUCode      string          `json:"sku_code" gorm:"column:sku_code;uniqueIndex;not null"`
	VariantLabel string          `json:"variant_label" gorm:"not null"`
	CaseSize     *string         `json:"case_size"`
	MRP          decimal.Decimal `json:"mrp" gorm:"column:mrp;type:decimal(12,2);not null"`
	DealerPrice  decimal.Decimal `json:"dealer_price" gorm:"type:decimal(12,2);not null"`
	IsActive     bool            `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (s *SKU) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
