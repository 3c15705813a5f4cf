package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raf-aleaqarih/raf24-api/internal/auth"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

const (
	// ContextKeyAdminID holds the authenticated admin's ID (hex string).
	ContextKeyAdminID = "adminID"
	// ContextKeyAdminRole holds the authenticated admin's role.
	ContextKeyAdminRole = "adminRole"
	// ContextKeyPermissions holds the authenticated admin's permission list.
	ContextKeyPermissions = "adminPermissions"
)

// AuthMiddleware validates the Bearer access token and stores the admin's
// identity in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := auth.ValidateToken(parts[1], jwtSecret, auth.TokenKindAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(ContextKeyAdminID, claims.AdminID)
		c.Set(ContextKeyAdminRole, claims.Role)
		c.Set(ContextKeyPermissions, claims.Permissions)
		c.Next()
	}
}

// RequireRole allows only the listed roles. Assumes AuthMiddleware ran.
func RequireRole(roles ...models.AdminRole) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyAdminRole)
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Insufficient role"})
			return
		}
		c.Next()
	}
}

// RequirePermission allows super admins and any admin holding the given
// permission. Assumes AuthMiddleware ran.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextKeyAdminRole) == string(models.RoleSuperAdmin) {
			c.Next()
			return
		}
		perms, _ := c.Get(ContextKeyPermissions)
		if list, ok := perms.([]string); ok {
			for _, p := range list {
				if p == perm {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Insufficient permissions"})
	}
}
