package middleware

import (
	"net/http"
	"strings"

	"github.com/01moynul/agencyhub/internal/auth"
	"github.com/gin-gonic/gin"
)

// ContextAdminEmail is the gin context key holding the authenticated admin.
const ContextAdminEmail = "adminEmail"

// TokenValidator verifies a session token and returns its email claim.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AdminMiddleware is the gate in front of every mutating route.
// Missing or unverifiable tokens get 401, a valid token for anyone other
// than adminEmail gets 403.
func AdminMiddleware(tokens TokenValidator, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token format (must be Bearer)"})
			return
		}

		// 2. --- Validate Token ---
		email, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		// 3. --- Check Identity ---
		if email != adminEmail {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied: admin only"})
			return
		}

		c.Set(ContextAdminEmail, email)
		c.Next()
	}
}

// compile-time check that the real token manager satisfies the gate
var _ TokenValidator = (*auth.TokenManager)(nil)
