package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staylocal/internal/domain"
	"staylocal/internal/pkg/response"
)

// RequireRole passes callers whose role is in the allowed set. This is the
// coarse gate only; resource-ownership checks are layered on top in the
// services.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		raw, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		role := domain.Role(raw.(string))
		if !role.Valid() || !allowed[role] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
