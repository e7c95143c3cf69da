package middleware

import (
	"context"
	"strings"

	"AdminBackend/jwt"

	"github.com/gin-gonic/gin"
)

const identityKey = "Identity"

// TokenVerifier resolves a raw session token into an identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (*jwt.Identity, bool)
}

// Authenticate attaches the caller's identity to the context when a valid token is present.
// It never rejects a request; RequireLogin and RequireRole do that.
func Authenticate(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		identity, ok := verifier.VerifyToken(c.Request.Context(), token)
		if !ok {
			c.Next()
			return
		}

		c.Set("Token", token)
		c.Set(identityKey, identity)
		c.Next()
	}
}

// BearerToken reads the token from the Authorization header, falling back to the session cookie.
func BearerToken(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}

	if cookieName == "" {
		return ""
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// IdentityFrom returns the identity set by Authenticate.
func IdentityFrom(c *gin.Context) (*jwt.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*jwt.Identity)
	return identity, ok && identity != nil
}
