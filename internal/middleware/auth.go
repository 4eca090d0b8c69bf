package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"handyhub/internal/domain"
	"handyhub/internal/pkg/jwt"
	"handyhub/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth validates the bearer token and stores user_id and role on the
// gin context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}
		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, string(role))
		c.Next()
	}
}

// CurrentActor reads what JWTAuth stored.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	id := c.GetInt64(ctxUserID)
	role := domain.Role(c.GetString(ctxRole))
	if id == 0 || !role.Valid() {
		return domain.Actor{}, false
	}
	return domain.Actor{ID: id, Role: role}, true
}

// MustActor is CurrentActor for handlers mounted behind JWTAuth. It writes
// 401 and returns false when the context carries no caller.
func MustActor(c *gin.Context) (domain.Actor, bool) {
	a, ok := CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		c.Abort()
	}
	return a, ok
}
