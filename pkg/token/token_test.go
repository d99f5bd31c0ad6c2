package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-platform/backend/domain"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	signed, err := m.Sign("user-1", "ada@example.org", "contributor")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.org", claims.Email)
	assert.Equal(t, "contributor", claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a", time.Hour).Sign("user-1", "a@b.c", "viewer")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(signed)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	expired := &Manager{secret: []byte("test-secret"), expiry: -time.Minute}

	signed, err := expired.Sign("user-1", "a@b.c", "viewer")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, err := m.Verify("not.a.token")
	assert.Error(t, err)
}

func TestDefaultExpiryApplied(t *testing.T) {
	m := NewManager("test-secret", 0)

	signed, err := m.Sign("user-1", "a@b.c", "viewer")
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 6*24*time.Hour)
	assert.LessOrEqual(t, remaining, 7*24*time.Hour)
}
