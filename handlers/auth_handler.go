package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"AdminBackend/jwt"
	"AdminBackend/logger"
	"AdminBackend/middleware"
	"AdminBackend/models"
	"AdminBackend/repository"
	"AdminBackend/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, token *models.LoginToken) error
	Delete(ctx context.Context, tokenID string) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID uint, role string) (string, *jwt.Identity, error)
}

// SessionCookie controls the cookie that carries the session token for browser clients.
type SessionCookie struct {
	Name   string
	Secure bool
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt string    `json:"expires_at"`
	User      loginUser `json:"user"`
}

type loginUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthHandler struct {
	users     UserFinder
	sessions  SessionStore
	tokens    TokenIssuer
	validator *validation.Validator
	cookie    SessionCookie
}

func NewAuthHandler(users UserFinder, sessions SessionStore, tokens TokenIssuer, v *validation.Validator, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		validator: v,
		cookie:    cookie,
	}
}

// Login signs in an administrator and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := bindBody[loginRequest](c, h.validator)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, Envelope{Message: "Invalid email or password"})
			return
		}
		logger.Error(ctx, "find user", err)
		c.JSON(http.StatusInternalServerError, Envelope{Message: "Error signing in"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, Envelope{Message: "Invalid email or password"})
		return
	}
	if !user.IsAdmin() {
		logger.Warn(ctx, "non-admin sign in refused", zap.Uint("user_id", user.ID))
		c.JSON(http.StatusUnauthorized, Envelope{Message: "Invalid email or password"})
		return
	}

	token, identity, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		logger.Error(ctx, "generate token", err)
		c.JSON(http.StatusInternalServerError, Envelope{Message: "Error signing in"})
		return
	}

	err = h.sessions.Create(ctx, &models.LoginToken{
		TokenID:        identity.TokenID,
		ExpirationTime: identity.ExpiresAt,
		UserID:         user.ID,
		Role:           user.Role,
	})
	if err != nil {
		logger.Error(ctx, "store login token", err)
		c.JSON(http.StatusInternalServerError, Envelope{Message: "Error signing in"})
		return
	}

	h.setCookie(c, token, int(time.Until(identity.ExpiresAt).Seconds()))
	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, Envelope{
		Message: "Login successful",
		Data: loginResponse{
			Token:     token,
			ExpiresAt: formatTime(identity.ExpiresAt),
			User: loginUser{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
				Role:  user.Role,
			},
		},
	})
}

// Logout drops the server-side session so the token stops verifying.
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Envelope{Message: "Unauthorized"})
		return
	}

	if _, err := h.sessions.Delete(c.Request.Context(), identity.TokenID); err != nil {
		logger.Error(c.Request.Context(), "delete login token", err)
		c.JSON(http.StatusInternalServerError, Envelope{Message: "Error signing out"})
		return
	}

	h.setCookie(c, "", -1)
	c.Header("Authorization", "")
	c.JSON(http.StatusOK, Envelope{Message: "Logout successful"})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	if h.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
