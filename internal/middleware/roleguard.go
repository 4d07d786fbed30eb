package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"order_portal/internal/metrics"
	"order_portal/internal/models"
	"order_portal/pkg/jwtutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCookie carries the signed session token.
const SessionCookie = "op_session"

// Context keys populated for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "user_role"
)

// RoleCache is the fast role-hint store. Any lookup error counts as a miss
// and falls through to the authoritative profile lookup.
type RoleCache interface {
	CachedRole(ctx context.Context, userID string) (string, error)
	CacheRole(ctx context.Context, userID, role string) error
	ClearRole(ctx context.Context, userID string) error
}

// ProfileStore is the authoritative role source.
type ProfileStore interface {
	GetByID(id string) (*models.User, error)
}

// RoleGuard intercepts every request: unauthenticated callers are bounced off
// protected paths, authenticated callers are steered to their role's section,
// and deactivated accounts are signed out on the spot. Role resolution is
// cache-first with a bounded TTL; transient resolution failures fail open so
// a flaky cache or DB never takes the whole site down, while explicit
// not-found/inactive determinations fail closed.
func RoleGuard(jwt *jwtutil.JWTUtil, cache RoleCache, profiles ProfileStore, log *zap.Logger, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// Operational endpoints and public assets bypass the guard entirely.
		if path == "/healthz" || path == "/metrics" || strings.HasPrefix(path, "/public/") {
			c.Next()
			return
		}

		claims := sessionClaims(c, jwt)
		public := path == "/" || strings.HasPrefix(path, "/auth/")

		if public {
			if claims == nil {
				c.Next()
				return
			}
			// Only the entry pages bounce a signed-in caller to their
			// section; /auth/me and /auth/logout must stay reachable.
			if path != "/" && path != "/auth/login" {
				c.Next()
				return
			}
			role, active, err := resolveRole(c, cache, profiles, claims.UserID)
			if err != nil || !active {
				// Transient failure, or an account that can no longer act:
				// the public page is safe either way.
				c.Next()
				return
			}
			c.Redirect(http.StatusFound, models.HomePath(role))
			c.Abort()
			return
		}

		if claims == nil {
			metrics.RecordAuthError("unauthenticated")
			clearSession(c, secureCookies)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		role, active, err := resolveRole(c, cache, profiles, claims.UserID)
		if err != nil {
			// Fail open on transient errors rather than blocking navigation.
			log.Warn("role resolution failed, allowing request", zap.Error(err))
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Next()
			return
		}
		if !active {
			metrics.RecordAuthError("inactive_account")
			_ = cache.ClearRole(c.Request.Context(), claims.UserID)
			clearSession(c, secureCookies)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		if prefix := models.HomePath(role); !strings.HasPrefix(path, prefix) && !strings.HasPrefix(path, "/api") {
			metrics.RecordAuthError("wrong_section")
			c.Redirect(http.StatusFound, prefix)
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// resolveRole answers (role, active, err). err is reserved for transient
// failures; a missing or deactivated profile comes back as active=false with
// a nil error.
func resolveRole(c *gin.Context, cache RoleCache, profiles ProfileStore, userID string) (string, bool, error) {
	ctx := c.Request.Context()

	if role, err := cache.CachedRole(ctx, userID); err == nil && models.ValidRole(role) {
		return role, true, nil
	}

	profile, err := profiles.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if !profile.IsActive {
		return "", false, nil
	}

	// Populate the cache for subsequent navigations; best effort.
	_ = cache.CacheRole(ctx, userID, profile.Role)
	return profile.Role, true, nil
}

func sessionClaims(c *gin.Context, jwt *jwtutil.JWTUtil) *jwtutil.SessionClaims {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		// Bearer fallback for API clients.
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return nil
		}
		token = parts[1]
	}

	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return nil
	}
	return claims
}

func clearSession(c *gin.Context, secure bool) {
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
