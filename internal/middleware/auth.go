package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/auth"
	"github.com/fitsync/fitsync/internal/types"
)

// Context keys populated by RequireAuth
const (
	LocalUserID = "userID"
	LocalEmail  = "userEmail"
)

// RequireAuth validates the Authorization bearer token on protected
// routes. An absent token is rejected distinctly (401) from an invalid
// or expired one (403); both happen before any storage access.
func RequireAuth(tokens *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return &types.CustomError{
				Status:  fiber.StatusUnauthorized,
				Code:    types.CodeNoToken,
				Message: "Authorization token required",
			}
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return &types.CustomError{
				Status:  fiber.StatusUnauthorized,
				Code:    types.CodeNoToken,
				Message: "Authorization header must be \"Bearer <token>\"",
			}
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			code := types.CodeInvalidToken
			message := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				code = types.CodeTokenExpired
				message = "Token expired"
			}
			return &types.CustomError{
				Status:  fiber.StatusForbidden,
				Code:    code,
				Message: message,
			}
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)

		return c.Next()
	}
}
