package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/services"
	"github.com/fitsync/fitsync/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler serves the stats and activity-log endpoints. Any valid
// bearer token is accepted; there is no elevated-role check.
type AdminHandler struct {
	DB        *gorm.DB
	Cfg       *config.Config
	StartedAt time.Time
}

// Stats handles GET /api/admin/stats
// @Summary Row-count statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.CollectStats(h.DB)
	if err != nil {
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"stats":         stats,
		"server_uptime": time.Since(h.StartedAt).Seconds(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// Logs handles GET /api/logs
// @Summary Recent activity log entries
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries, default 50, max 100"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /logs [get]
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultLogLimit)

	logs, err := services.RecentLogs(h.DB, limit)
	if err != nil {
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"logs": logs,
	})
}
