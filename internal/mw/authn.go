package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roombook-backend/internal/auth"
)

// Context keys set by the auth middleware.
const (
	ContextEmailKey = "auth_email"
	ContextRoleKey  = "auth_role"
)

// RequireAuth validates the bearer token and stores the caller identity
// on the request context.
func RequireAuth(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := m.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextRoleKey, string(claims.Role))
		c.Next()
	}
}

// RequireAdmin allows only tokens issued for the admin realm. It must
// run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != string(auth.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
