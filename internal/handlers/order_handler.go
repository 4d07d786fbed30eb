package handlers

import (
	"errors"
	"net/http"

	"order_portal/internal/cart"
	"order_portal/internal/metrics"
	"order_portal/internal/middleware"
	"order_portal/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	userService  services.UserService
	persister    cart.Persister
}

func NewOrderHandler(orderService services.OrderService, userService services.UserService, persister cart.Persister) *OrderHandler {
	return &OrderHandler{orderService: orderService, userService: userService, persister: persister}
}

// PlaceOrder turns the caller's cart into a pending order.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	// An empty body is fine; notes are optional.
	_ = c.ShouldBindJSON(&req)

	retailerID := c.GetString(middleware.CtxUserID)
	profile, err := h.userService.GetUserByID(retailerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found"})
		return
	}

	s := cart.Open(c.Request.Context(), retailerID, h.persister)
	order, err := h.orderService.PlaceOrder(c.Request.Context(), profile, s, req.Notes)
	if err != nil {
		// Placement is one transaction; any failure rolled back whole.
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order: " + err.Error()})
		return
	}

	metrics.RecordOrderPlaced()
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(
		c.GetString(middleware.CtxRole),
		c.GetString(middleware.CtxUserID),
		c.Query("status"),
	)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(
		c.GetString(middleware.CtxRole),
		c.GetString(middleware.CtxUserID),
		c.Param("id"),
	)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateStatus moves an order through the state machine. Retailers are
// rejected here by role, admins always pass, salesmen only for own orders.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	order, err := h.orderService.UpdateStatus(
		c.Request.Context(),
		c.GetString(middleware.CtxRole),
		c.GetString(middleware.CtxUserID),
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrStatusConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Order was updated by someone else, reload and retry"})
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
