package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireLogin aborts with 401 when no verified identity is attached.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
