// Package token signs and verifies the platform's bearer tokens.
// The payload is fixed to {userId, email, role}; refresh is a plain
// re-sign of the same payload with a fresh expiry.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/rbe-platform/backend/domain"
)

// DefaultExpiry matches the platform default of seven days.
const DefaultExpiry = 7 * 24 * time.Hour

// Claims is the JWT payload carried by every issued token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies tokens with a shared secret.
type Manager struct {
	secret []byte
	expiry time.Duration
}

func NewManager(secret string, expiry time.Duration) *Manager {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Sign issues a token for the given identity.
func (m *Manager) Sign(userID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token, returning its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "Invalid or expired token", err)
	}
	return claims, nil
}
