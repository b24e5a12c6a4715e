package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/types"
	"github.com/fitsync/fitsync/internal/utils"
)

// ErrorHandler renders every unhandled error as the JSON error
// envelope. Wired as the global fiber error handler.
func ErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var custom *types.CustomError
		if errors.As(err, &custom) {
			return utils.ErrorResponse(c, custom.Status, custom.Code, custom.Message)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code := types.CodeInternal
			if fiberErr.Code == fiber.StatusNotFound {
				code = types.CodeNotFound
			}
			return utils.ErrorResponse(c, fiberErr.Code, code, fiberErr.Message)
		}

		return utils.InternalErrorResponse(c, err, cfg.IsProduction())
	}
}
