package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/services"
	"github.com/fitsync/fitsync/internal/types"
	"github.com/fitsync/fitsync/internal/utils"
	"gorm.io/gorm"
)

// SettingsHandler serves the per-user settings document
type SettingsHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Get handles GET /api/settings
// @Summary Get settings
// @Description Returns the settings document, substituting defaults when absent
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID, _ := authUser(c)

	settings, err := services.GetSettings(h.DB, userID)
	if err != nil {
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"settings": settings,
	})
}

// Update handles POST /api/settings
// @Summary Replace settings
// @Description Stores the settings document, replacing any existing one
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "Wrapper with required settings member"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /settings [post]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	userID, _ := authUser(c)

	var body struct {
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidation, "Invalid JSON body")
	}

	if isAbsent(body.Settings) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeMissingData, "Settings data is required")
	}

	rowID, err := services.UpsertSettings(h.DB, userID, body.Settings)
	if err != nil {
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	services.LogActivity(h.DB, &userID, "settings_update", "settings replaced", c.IP(), c.Get(fiber.HeaderUserAgent))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Saved",
		"rowId":   rowID,
	})
}
