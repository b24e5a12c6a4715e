package models

import (
	"time"
)

// Kind identifies which monthly document table an operation targets
type Kind string

const (
	KindNutrition Kind = "nutrition"
	KindWorkout   Kind = "workout"
)

// Table returns the backing table name for the kind
func (k Kind) Table() string {
	switch k {
	case KindWorkout:
		return "workout_data"
	default:
		return "nutrition_data"
	}
}

// ResponseKey returns the JSON member name the kind uses in API bodies
func (k Kind) ResponseKey() string {
	switch k {
	case KindWorkout:
		return "workouts"
	default:
		return "nutrition"
	}
}

// NutritionData holds one nutrition document per (user, month-key).
// The payload schema is owned by the client and stored opaquely.
type NutritionData struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:char(36);not null;index:idx_nutrition_user_month,unique"`
	MonthKey  string `gorm:"size:32;not null;index:idx_nutrition_user_month,unique"`
	Data      JSON   `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkoutData holds one workout document per (user, month-key)
type WorkoutData struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:char(36);not null;index:idx_workout_user_month,unique"`
	MonthKey  string `gorm:"size:32;not null;index:idx_workout_user_month,unique"`
	Data      JSON   `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for NutritionData
func (NutritionData) TableName() string {
	return "nutrition_data"
}

// TableName overrides the table name for WorkoutData
func (WorkoutData) TableName() string {
	return "workout_data"
}
