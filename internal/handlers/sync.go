package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/services"
	"github.com/fitsync/fitsync/internal/types"
	"github.com/fitsync/fitsync/internal/utils"
	"gorm.io/gorm"
)

// SyncHandler handles the bulk export/import routes
type SyncHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// GetSync handles GET /api/sync
// @Summary Export all account data
// @Description Reads every nutrition and workout document plus settings for the authenticated user
// @Tags Sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /sync [get]
func (h *SyncHandler) GetSync(c *fiber.Ctx) error {
	userID, email := authUser(c)

	data, err := services.GetAllData(h.DB, userID)
	if err != nil {
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	services.LogActivity(h.DB, &userID, "sync_read", "full export", c.IP(), c.Get(fiber.HeaderUserAgent))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"nutrition": data.Nutrition,
		"workouts":  data.Workouts,
		"settings":  data.Settings,
		"lastSync":  time.Now().UTC().Format(time.RFC3339),
		"user":      publicUser(h.DB, userID, email),
	})
}

// PostSync handles POST /api/sync
// @Summary Import account data
// @Description Upserts every document of the payload inside one transaction
// @Tags Sync
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SyncPayload true "Sections to import"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /sync [post]
func (h *SyncHandler) PostSync(c *fiber.Ctx) error {
	userID, _ := authUser(c)

	var payload services.SyncPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidation, "Invalid JSON body")
	}

	operations, err := services.PutAllData(h.DB, userID, payload)
	if err != nil {
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	services.LogActivity(h.DB, &userID, "sync_write",
		fmt.Sprintf("%d operations", operations), c.IP(), c.Get(fiber.HeaderUserAgent))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Sync complete",
		"operations": operations,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
