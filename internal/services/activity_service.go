package services

import (
	"github.com/fitsync/fitsync/internal/logger"
	"github.com/fitsync/fitsync/internal/models"
	"gorm.io/gorm"
)

// Recent-logs query bounds
const (
	DefaultLogLimit = 50
	MaxLogLimit     = 100
)

// LogActivity appends one audit record. Append failures are swallowed:
// logging must never cause a data operation to fail.
func LogActivity(db *gorm.DB, userID *string, action, details, ipAddress, userAgent string) {
	entry := models.ActivityLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := db.Create(&entry).Error; err != nil {
		logger.Log.Warnw("activity log append failed", "action", action, "err", err)
	}
}

// RecentLogs returns up to limit most recent audit records, newest
// first. Out-of-range limits are clamped, not rejected.
func RecentLogs(db *gorm.DB, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > MaxLogLimit {
		limit = MaxLogLimit
	}

	var logs []models.ActivityLog
	if err := db.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
