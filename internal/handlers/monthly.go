package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/models"
	"github.com/fitsync/fitsync/internal/services"
	"github.com/fitsync/fitsync/internal/types"
	"github.com/fitsync/fitsync/internal/utils"
	"gorm.io/gorm"
)

// MonthlyDataHandler serves one monthly document kind. The server
// mounts one instance for nutrition and one for workouts.
type MonthlyDataHandler struct {
	DB   *gorm.DB
	Cfg  *config.Config
	Kind models.Kind
}

// List handles GET /api/nutrition and GET /api/workouts
// @Summary List monthly documents
// @Description Returns all documents of the kind keyed by month, newest month first
// @Tags Data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /nutrition [get]
func (h *MonthlyDataHandler) List(c *fiber.Ctx) error {
	userID, _ := authUser(c)

	result, err := services.GetMonthlyData(h.DB, userID, h.Kind)
	if err != nil {
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		h.Kind.ResponseKey(): result,
	})
}

// Upsert handles POST /api/nutrition/:monthKey and POST /api/workouts/:monthKey
// @Summary Replace one monthly document
// @Description Stores the payload for the month, replacing any existing document
// @Tags Data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param monthKey path string true "Month key, e.g. 2025-07"
// @Param body body object true "Wrapper with required data member"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /nutrition/{monthKey} [post]
func (h *MonthlyDataHandler) Upsert(c *fiber.Ctx) error {
	userID, _ := authUser(c)
	monthKey := c.Params("monthKey")

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidation, "Invalid JSON body")
	}

	if isAbsent(body.Data) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeMissingData, "Document data is required")
	}

	rowID, err := services.UpsertMonthlyData(h.DB, userID, h.Kind, monthKey, body.Data)
	if err != nil {
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	services.LogActivity(h.DB, &userID, string(h.Kind)+"_update",
		fmt.Sprintf("month %s", monthKey), c.IP(), c.Get(fiber.HeaderUserAgent))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Saved",
		"monthKey": monthKey,
		"rowId":    rowID,
	})
}

// isAbsent reports whether a raw JSON member was omitted or explicitly null
func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
