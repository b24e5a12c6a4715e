package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsync/fitsync/internal/auth"
	"github.com/fitsync/fitsync/internal/models"
	"github.com/fitsync/fitsync/internal/services"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret")

	token, user, err := services.Register(db, tokens, "jane@example.com", "secret123", "Jane")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)

	loginToken, loginUser, err := services.Login(db, tokens, "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, loginUser.ID)
	assert.NotNil(t, loginUser.LastLogin)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret")

	_, first, err := services.Register(db, tokens, "jane@example.com", "secret123", "Jane")
	require.NoError(t, err)

	_, _, err = services.Register(db, tokens, "jane@example.com", "different456", "Impostor")
	assert.ErrorIs(t, err, services.ErrUserExists)

	// The existing user's stored hash must be untouched
	var stored models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&stored).Error)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
	assert.NoError(t, auth.CheckPassword(stored.PasswordHash, "secret123"))
}

func TestLoginRejections(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret")

	_, user, err := services.Register(db, tokens, "jane@example.com", "secret123", "Jane")
	require.NoError(t, err)

	_, _, err = services.Login(db, tokens, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = services.Login(db, tokens, "jane@example.com", "wrongpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	_, _, err = services.Login(db, tokens, "jane@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
