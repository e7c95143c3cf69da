package jwt

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"AdminBackend/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity is the verified claim carried by a session token.
type Identity struct {
	SubjectID uint
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

type claims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionChecker reports whether the server still holds the session for a token id.
type SessionChecker interface {
	SessionActive(ctx context.Context, tokenID string) (bool, error)
}

// Manager signs and verifies session tokens.
type Manager struct {
	method    jwt.SigningMethod
	signKey   interface{}
	verifyKey interface{}
	ttl       time.Duration
	sessions  SessionChecker
	now       func() time.Time
}

func NewHMACManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		method:    jwt.SigningMethodHS256,
		signKey:   secret,
		verifyKey: secret,
		ttl:       ttl,
		now:       time.Now,
	}
}

func NewRSAManager(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, ttl time.Duration) *Manager {
	return &Manager{
		method:    jwt.SigningMethodRS256,
		signKey:   privateKey,
		verifyKey: publicKey,
		ttl:       ttl,
		now:       time.Now,
	}
}

// LoadRSAManager reads PEM encoded keys from disk.
func LoadRSAManager(privateKeyPath, publicKeyPath string, ttl time.Duration) (*Manager, error) {
	keyBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	keyBytes, err = os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return NewRSAManager(privateKey, publicKey, ttl), nil
}

// WithSessions makes Verify reject tokens whose session row is gone.
func (m *Manager) WithSessions(sessions SessionChecker) *Manager {
	m.sessions = sessions
	return m
}

// WithClock replaces the time source used to issue and verify tokens.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// GenerateToken signs a new token for the user. The returned identity carries the token id and expiry.
func (m *Manager) GenerateToken(userID uint, role string) (string, *Identity, error) {
	if userID == 0 {
		return "", nil, errors.New("jwt: user id is required")
	}

	issuedAt := m.now()
	identity := &Identity{
		SubjectID: userID,
		Role:      role,
		TokenID:   uuid.NewString(),
		ExpiresAt: issuedAt.Add(m.ttl),
	}

	token := jwt.NewWithClaims(m.method, claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        identity.TokenID,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(identity.ExpiresAt),
		},
	})

	tokenString, err := token.SignedString(m.signKey)
	if err != nil {
		return "", nil, err
	}
	return tokenString, identity, nil
}

// VerifyToken returns the identity for a valid token, or false when the token is
// missing, malformed, expired, signed differently or logged out.
func (m *Manager) VerifyToken(ctx context.Context, tokenString string) (*Identity, bool) {
	if tokenString == "" {
		return nil, false
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		return m.verifyKey, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		logger.Info(ctx, "rejected token", zap.NamedError("reason", err))
		return nil, false
	}

	if c.UserID == 0 || c.ID == "" {
		return nil, false
	}

	if m.sessions != nil {
		active, err := m.sessions.SessionActive(ctx, c.ID)
		if err != nil {
			logger.Error(ctx, "session lookup failed", err)
			return nil, false
		}
		if !active {
			return nil, false
		}
	}

	return &Identity{
		SubjectID: c.UserID,
		Role:      c.Role,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, true
}
