package services

import (
	"time"

	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/logger"
	"github.com/fitsync/fitsync/internal/models"
	"gorm.io/gorm"
)

// HealthCheckResult is the body of GET /api/health and the output of
// the healthcheck binary
type HealthCheckResult struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
	Database    string  `json:"database"`
	UsersCount  int64   `json:"users_count"`
	Version     string  `json:"version"`
}

// HealthCheck pings the database and reports service status
func HealthCheck(cfg *config.Config, db *gorm.DB, startedAt time.Time) HealthCheckResult {
	result := HealthCheckResult{
		Status:      "healthy",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(startedAt).Seconds(),
		Environment: cfg.Env,
		Database:    "ok",
		Version:     config.Version,
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		logger.Log.Errorw("health check failed, database connection", "err", err)
		return result
	}

	if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		logger.Log.Errorw("health check failed, database ping", "err", err)
		return result
	}

	if err := db.Model(&models.User{}).Count(&result.UsersCount).Error; err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		logger.Log.Errorw("health check failed, users count", "err", err)
	}

	return result
}
