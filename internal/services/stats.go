package services

import (
	"github.com/fitsync/fitsync/internal/models"
	"gorm.io/gorm"
)

// Stats is the row-count snapshot served by the admin stats endpoint
type Stats struct {
	Users              int64 `json:"users"`
	ActiveUsers        int64 `json:"active_users"`
	NutritionDocuments int64 `json:"nutrition_documents"`
	WorkoutDocuments   int64 `json:"workout_documents"`
	SettingsDocuments  int64 `json:"settings_documents"`
	ActivityLogs       int64 `json:"activity_logs"`
}

// CollectStats counts rows across all five tables
func CollectStats(db *gorm.DB) (*Stats, error) {
	var stats Stats

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.Users},
		{&models.NutritionData{}, &stats.NutritionDocuments},
		{&models.WorkoutData{}, &stats.WorkoutDocuments},
		{&models.UserSettings{}, &stats.SettingsDocuments},
		{&models.ActivityLog{}, &stats.ActivityLogs},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
