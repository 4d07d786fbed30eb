package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID          string          `json:"id" gorm:"type:uuid;primaryKey"`
	RetailerID  string          `json:"retailer_id" gorm:"type:uuid;not null;index"`
	SalesmanID  *string         `json:"salesman_id" gorm:"type:uuid;index"`
	Status      string          `json:"status" gorm:"default:'pending'"` // pending, accepted, rejected, delivered
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Notes       *string         `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Retailer *User       `json:"retailer,omitempty" gorm:"foreignKey:RetailerID"`
	Items    []OrderItem `json:"order_items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderRejected  OrderStatus = "rejected"
	OrderDelivered OrderStatus = "delivered"
)

// CanTransition reports whether an order may move from one status to another.
// The machine is strictly forward: pending fans out to accepted/rejected,
// accepted moves to delivered, rejected and delivered are terminal.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderPending:
		return to == OrderAccepted || to == OrderRejected
	case OrderAccepted:
		return to == OrderDelivered
	}
	return false
}
