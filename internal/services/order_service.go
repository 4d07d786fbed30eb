package services

import (
	"context"
	"errors"
	"fmt"

	"order_portal/internal/cart"
	"order_portal/internal/models"
	"order_portal/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNoProfile = errors.New("no retailer profile resolved")
	// ErrOrderHeaderCreate and ErrOrderItemsCreate classify where a placement
	// transaction failed. Either way the transaction rolled back and the cart
	// is preserved for a safe retry.
	ErrOrderHeaderCreate = errors.New("order creation failed")
	ErrOrderItemsCreate  = errors.New("order items creation failed")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")
	ErrOrderNotFound     = errors.New("order not found")
)

type OrderService interface {
	PlaceOrder(ctx context.Context, retailer *models.User, c *cart.Store, notes string) (*models.Order, error)
	GetOrder(actorRole, actorID, orderID string) (*models.Order, error)
	ListOrders(actorRole, actorID, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, actorRole, actorID, orderID, newStatus string) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// PlaceOrder converts the cart into a persisted order. The header and all
// items are written in one transaction; unit prices are the dealer prices
// snapshotted into the cart at add time. The cart is cleared only after the
// transaction commits, so any failure leaves it intact for a retry.
func (s *orderService) PlaceOrder(ctx context.Context, retailer *models.User, c *cart.Store, notes string) (*models.Order, error) {
	if retailer == nil {
		return nil, ErrNoProfile
	}
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		RetailerID:  retailer.ID,
		SalesmanID:  retailer.AssignedSalesmanID,
		Status:      string(models.OrderPending),
		TotalAmount: c.TotalAmount(),
	}
	if notes != "" {
		order.Notes = &notes
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		items = append(items, models.OrderItem{
			SKUID:      l.SKUID,
			Quantity:   l.Quantity,
			UnitPrice:  l.DealerPrice,
			TotalPrice: l.DealerPrice.Mul(qty),
		})
	}

	if err := s.orderRepo.CreateWithItems(order, items); err != nil {
		if errors.Is(err, repository.ErrOrderItemInsert) {
			return nil, fmt.Errorf("%w: %v", ErrOrderItemsCreate, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrOrderHeaderCreate, err)
	}

	// The order is placed; a stale cart slot is the lesser problem.
	_ = c.Clear(ctx)
	return order, nil
}

func (s *orderService) GetOrder(actorRole, actorID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !s.canSee(actorRole, actorID, order) {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListOrders scopes the listing to the actor: admins see everything,
// salesmen their assigned retailers' orders, retailers their own.
func (s *orderService) ListOrders(actorRole, actorID, status string) ([]models.Order, error) {
	switch models.UserRole(actorRole) {
	case models.SuperAdmin:
		return s.orderRepo.GetAll(status)
	case models.Salesman:
		return s.orderRepo.GetBySalesmanID(actorID, status)
	case models.Retailer:
		return s.orderRepo.GetByRetailerID(actorID, status)
	}
	return nil, ErrForbidden
}

// UpdateStatus advances the order state machine. Retailers can never move an
// order; salesmen only their own. The filtered update detects a concurrent
// status change and reports it instead of silently overwriting.
func (s *orderService) UpdateStatus(ctx context.Context, actorRole, actorID, orderID, newStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	switch models.UserRole(actorRole) {
	case models.SuperAdmin:
	case models.Salesman:
		if order.SalesmanID == nil || *order.SalesmanID != actorID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if !models.CanTransition(models.OrderStatus(order.Status), models.OrderStatus(newStatus)) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	ok, err := s.orderRepo.UpdateStatusIf(orderID, order.Status, newStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStatusConflict
	}

	order.Status = newStatus
	return order, nil
}

func (s *orderService) canSee(actorRole, actorID string, order *models.Order) bool {
	switch models.UserRole(actorRole) {
	case models.SuperAdmin:
		return true
	case models.Salesman:
		return order.SalesmanID != nil && *order.SalesmanID == actorID
	case models.Retailer:
		return order.RetailerID == actorID
	}
	return false
}
