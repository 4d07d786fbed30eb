package repository

import (
	"errors"
	"fmt"

	"order_portal/internal/models"

	"gorm.io/gorm"
)

// ErrOrderInsert and ErrOrderItemInsert classify which insert of the
// placement transaction failed. The transaction rolls back either way.
var (
	ErrOrderInsert     = errors.New("order insert failed")
	ErrOrderItemInsert = errors.New("order item insert failed")
)

type OrderRepository interface {
	CreateWithItems(order *models.Order, items []models.OrderItem) error
	GetByID(id string) (*models.Order, error)
	GetByRetailerID(retailerID string, status string) ([]models.Order, error)
	GetBySalesmanID(salesmanID string, status string) ([]models.Order, error)
	GetAll(status string) ([]models.Order, error)
	UpdateStatusIf(id, fromStatus, toStatus string) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems persists the order header and all its items in a single
// transaction. Either everything lands or nothing does; there is no orphaned
// header to clean up after a failed item insert.
func (r *orderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrOrderInsert, err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrOrderItemInsert, err)
		}
		return nil
	})
}

func (r *orderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Retailer").Preload("Items").Preload("Items.SKU").Preload("Items.SKU.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByRetailerID(retailerID string, status string) ([]models.Order, error) {
	return r.list(r.db.Where("retailer_id = ?", retailerID), status)
}

func (r *orderRepository) GetBySalesmanID(salesmanID string, status string) ([]models.Order, error) {
	return r.list(r.db.Where("salesman_id = ?", salesmanID), status)
}

func (r *orderRepository) GetAll(status string) ([]models.Order, error) {
	return r.list(r.db, status)
}

func (r *orderRepository) list(q *gorm.DB, status string) ([]models.Order, error) {
	var orders []models.Order
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	err := q.Preload("Retailer").Preload("Items").Preload("Items.SKU").Preload("Items.SKU.Product").
		Order("created_at desc").Find(&orders).Error
	return orders, err
}

// UpdateStatusIf moves an order to toStatus only if it still sits at
// fromStatus. The filtered update doubles as the concurrency guard: when two
// actors race, the loser matches zero rows and gets ok=false.
func (r *orderRepository) UpdateStatusIf(id, fromStatus, toStatus string) (bool, error) {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
