package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is the grouping level of the catalog; sellable variants live on SKU.
type Product struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	BrandID     string    `json:"brand_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Brand *Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	SKUs  []SKU  `json:"skus,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
