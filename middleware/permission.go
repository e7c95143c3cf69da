package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole aborts with 401 without an identity and 403 when the identity holds another role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
			})
			c.Abort()
			return
		}
		if identity.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Forbidden Resource",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
