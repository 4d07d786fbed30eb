package handlers

import (
	"errors"
	"net/http"

	"order_portal/internal/middleware"
	"order_portal/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService services.AuthService
	userService services.UserService
}

func NewUserHandler(authService services.AuthService, userService services.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

// CreateUser is the privileged creation endpoint. The service re-checks that
// the requester is an active super admin against the users table; the guard's
// cached role is never the authority for this write.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requesterID := c.GetString(middleware.CtxUserID)
	user, err := h.authService.CreateUser(c.Request.Context(), requesterID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) ListSalesmen(c *gin.Context) {
	users, err := h.userService.GetSalesmen()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load salesmen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ListMyRetailers answers a salesman's roster: only retailers assigned to the
// calling salesman.
func (h *UserHandler) ListMyRetailers(c *gin.Context) {
	salesmanID := c.GetString(middleware.CtxUserID)
	users, err := h.userService.GetRetailersBySalesman(salesmanID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load retailers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var input services.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
