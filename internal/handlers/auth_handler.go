package handlers

import (
	"errors"
	"net/http"

	"order_portal/internal/metrics"
	"order_portal/internal/middleware"
	"order_portal/internal/models"
	"order_portal/internal/services"
	"order_portal/pkg/jwtutil"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   services.AuthService
	userService   services.UserService
	jwt           *jwtutil.JWTUtil
	cookieMaxAge  int
	secureCookies bool
}

func NewAuthHandler(authService services.AuthService, userService services.UserService, jwt *jwtutil.JWTUtil, cookieMaxAge int, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		userService:   userService,
		jwt:           jwt,
		cookieMaxAge:  cookieMaxAge,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	profile, token, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.RecordAuthError("login_failed")
		if errors.Is(err, services.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, h.cookieMaxAge, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{
		"user":  profile,
		"token": token,
		"home":  models.HomePath(profile.Role),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// Logout lives on a public path, so the guard has not resolved identity;
	// read the cookie directly to know whose role cache to drop.
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if claims, err := h.jwt.ValidateToken(token); err == nil {
			_ = h.authService.SignOut(c.Request.Context(), claims.UserID)
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		return
	}

	profile, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}
