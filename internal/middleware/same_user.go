package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// SameUserMiddleware restricts /users/:name routes to the token owner. It is a
// no-op when no authenticated user was stored, i.e. auth is disabled.
func SameUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userName, exists := c.Get(UserNameKey) // Get user name from context
		if !exists {
			c.Next() // Auth disabled
			return
		}
		// Check the path owner against the token owner
		if userName != c.Param("name") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this user"})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
