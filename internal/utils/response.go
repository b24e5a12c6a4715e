package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/types"
)

// ErrorResponse sends the standard error envelope: a human-readable
// `error` message plus a stable machine-readable `code`.
func ErrorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"error":     message,
		"code":      code,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// InternalErrorResponse sends a generic 500 envelope. The underlying
// error text is attached as `detail` only outside production mode.
func InternalErrorResponse(c *fiber.Ctx, err error, production bool) error {
	body := fiber.Map{
		"status":    fiber.StatusInternalServerError,
		"error":     "Internal server error",
		"code":      types.CodeInternal,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	}
	if !production && err != nil {
		body["detail"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, types.CodeNotFound, message)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Detail    string `json:"detail,omitempty"`
}
