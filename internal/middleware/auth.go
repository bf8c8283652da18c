package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"staylocal/internal/domain"
	jwtsvc "staylocal/internal/pkg/jwt"
	"staylocal/internal/pkg/response"
)

// UserLoader resolves a user id from a verified token to the stored account.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWTAuth verifies the bearer token, loads the account, and rejects
// deactivated users. On success it stores user_id, role and the user itself
// in the request context.
func JWTAuth(jwt *jwtsvc.Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not found")
			c.Abort()
			return
		}

		if !user.IsActive {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account is deactivated")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))

		c.Next()
	}
}
