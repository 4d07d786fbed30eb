package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem freezes the price of one SKU at order time. UnitPrice and
// TotalPrice never follow later dealer-price edits.
type OrderItem struct {
	ID         string          `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID    string          `json:"order_id" gorm:"type:uuid;not null;index"`
	SKUID      string          `json:"sku_id" gorm:"column:sku_id;type:uuid;not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`

	SKU *SKU `json:"sku,omitempty" gorm:"foreignKey:SKUID"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
