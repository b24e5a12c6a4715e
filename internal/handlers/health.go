package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/services"
	"gorm.io/gorm"
)

// HealthHandler serves the public health endpoint
type HealthHandler struct {
	DB        *gorm.DB
	Cfg       *config.Config
	StartedAt time.Time
}

// Health handles GET /api/health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB, h.StartedAt)
	return c.Status(fiber.StatusOK).JSON(result)
}
