package models

import (
	"time"
)

// UserSettings holds the single settings document for a user
type UserSettings struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:char(36);uniqueIndex;not null"`
	Data      JSON   `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for UserSettings
func (UserSettings) TableName() string {
	return "user_settings"
}
