package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Generate("user-1", "jane@example.com")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").Generate("user-1", "jane@example.com")
	require.NoError(t, err)

	_, err = NewManager("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpired(t *testing.T) {
	expired := &Manager{secret: []byte("test-secret"), ttl: -time.Hour}
	token, err := expired.Generate("user-1", "jane@example.com")
	require.NoError(t, err)

	_, err = NewManager("test-secret").Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := NewManager("test-secret").Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, CheckPassword(hash, "secret123"))
	assert.Error(t, CheckPassword(hash, "wrongpass"))
}
