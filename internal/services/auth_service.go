package services

import (
	"errors"
	"time"

	"github.com/fitsync/fitsync/internal/auth"
	"github.com/fitsync/fitsync/internal/logger"
	"github.com/fitsync/fitsync/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Register creates a new account and issues its first bearer token.
// Field validation (presence, password length) happens at the HTTP
// boundary before this is called.
func Register(db *gorm.DB, tokens *auth.Manager, email, password, name string) (string, *models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", nil, err
	}
	if count > 0 {
		return "", nil, ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
		LastLogin:    &now,
	}
	if err := db.Create(&user).Error; err != nil {
		return "", nil, err
	}

	token, err := tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	logger.Log.Infow("user registered", "userID", user.ID)

	return token, &user, nil
}

// Login verifies credentials and issues a bearer token. Unknown,
// inactive, and wrong-password cases all collapse into
// ErrInvalidCredentials so callers cannot probe for accounts.
func Login(db *gorm.DB, tokens *auth.Manager, email, password string) (string, *models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		return "", nil, err
	}
	user.LastLogin = &now

	token, err := tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}
