package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/middleware"
	"github.com/fitsync/fitsync/internal/models"
	"gorm.io/gorm"
)

// authUser extracts the authenticated identity set by the auth middleware
func authUser(c *fiber.Ctx) (userID, email string) {
	if v, ok := c.Locals(middleware.LocalUserID).(string); ok {
		userID = v
	}
	if v, ok := c.Locals(middleware.LocalEmail).(string); ok {
		email = v
	}
	return
}

// publicUser resolves the authenticated user's public view, falling
// back to token claims when the row cannot be read.
func publicUser(db *gorm.DB, userID, email string) models.PublicUser {
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err == nil {
		return user.Public()
	}
	return models.PublicUser{ID: userID, Email: email}
}
