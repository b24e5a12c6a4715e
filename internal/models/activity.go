package models

import (
	"time"
)

// ActivityLog is an append-only audit record. UserID is nullable so
// log rows survive user deletion with the link severed.
type ActivityLog struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	UserID    *string `gorm:"type:char(36);index"`
	Action    string  `gorm:"size:64;not null"`
	Details   string  `gorm:"type:text"`
	IPAddress string  `gorm:"size:64"`
	UserAgent string  `gorm:"size:255"`
	CreatedAt time.Time
}

// TableName overrides the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}
