package handlers

import (
	"errors"
	"net/http"

	"order_portal/internal/cart"
	"order_portal/internal/middleware"
	"order_portal/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	catalogService services.CatalogService
	persister      cart.Persister
}

func NewCartHandler(catalogService services.CatalogService, persister cart.Persister) *CartHandler {
	return &CartHandler{catalogService: catalogService, persister: persister}
}

func (h *CartHandler) open(c *gin.Context) *cart.Store {
	return cart.Open(c.Request.Context(), c.GetString(middleware.CtxUserID), h.persister)
}

func (h *CartHandler) Get(c *gin.Context) {
	s := h.open(c)
	respondCart(c, s)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		SKUID    string `json:"sku_id"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SKUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sku, err := h.catalogService.GetSKU(req.SKUID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "SKU not found"})
		return
	}

	productName := ""
	brandName := ""
	if sku.Product != nil {
		productName = sku.Product.Name
		if sku.Product.Brand != nil {
			brandName = sku.Product.Brand.Name
		}
	}

	s := h.open(c)
	if err := s.AddItem(c.Request.Context(), sku, productName, brandName, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	respondCart(c, s)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := h.open(c)
	if err := s.UpdateQuantity(c.Request.Context(), c.Param("sku_id"), req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	respondCart(c, s)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	s := h.open(c)
	if err := s.RemoveItem(c.Request.Context(), c.Param("sku_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	respondCart(c, s)
}

func (h *CartHandler) Clear(c *gin.Context) {
	s := h.open(c)
	if err := s.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	respondCart(c, s)
}

func respondCart(c *gin.Context, s *cart.Store) {
	c.JSON(http.StatusOK, gin.H{
		"items":        s.Lines(),
		"total_items":  s.TotalItems(),
		"total_amount": s.TotalAmount(),
	})
}
