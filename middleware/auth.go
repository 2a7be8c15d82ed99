package middleware

import (
	"strings"

	"phantoms-store/helper"
	"phantoms-store/logger"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

const PrincipalKey = "principal"

func AuthMiddleware(authService services.AuthService, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendUnauthorizedError(c, "Authorization header required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			h.SendUnauthorizedError(c, "Bearer token required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		principal, err := authService.Authenticate(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			h.SendError(c, err)
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set("user_id", principal.UserID)
		c.Set("role", string(principal.Role))

		c.Next()
	}
}

// CurrentPrincipal returns the caller resolved by AuthMiddleware, or nil.
func CurrentPrincipal(c *gin.Context) *models.Principal {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	p, _ := v.(*models.Principal)
	return p
}

func RequireSuperAdmin(h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil {
			h.SendUnauthorizedError(c, "Authentication required", h.EmptyJsonMap())
			c.Abort()
			return
		}
		if !p.IsSuperAdmin() {
			logger.Warn(c.Request.Context(), "super admin route refused")
			h.SendForbiddenError(c, "Super admin access required", h.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission passes callers holding perm through a grant or their role.
func RequirePermission(h *helper.HTTPHelper, perm models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil {
			h.SendUnauthorizedError(c, "Authentication required", h.EmptyJsonMap())
			c.Abort()
			return
		}
		if !p.Can(perm) {
			h.SendForbiddenError(c, "Insufficient permissions", h.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}
