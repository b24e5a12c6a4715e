package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/fitsync/fitsync/internal/auth"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/models"
	"github.com/fitsync/fitsync/internal/services"
	"github.com/fitsync/fitsync/internal/types"
	"github.com/fitsync/fitsync/internal/utils"
	"gorm.io/gorm"
)

// MinPasswordLength is enforced at registration
const MinPasswordLength = 6

// AuthHandler handles registration and login
type AuthHandler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Tokens *auth.Manager
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type tokenResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Description Creates a user with a unique email and issues a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body handlers.credentialsBody true "Registration credentials"
// @Success 201 {object} handlers.tokenResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body credentialsBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidation, "Invalid JSON body")
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Email == "" || !strings.Contains(body.Email, "@") {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidation, "A valid email is required")
	}
	if len(body.Password) < MinPasswordLength {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeWeakPassword, "Password must be at least 6 characters")
	}

	token, user, err := services.Register(h.DB, h.Tokens, body.Email, body.Password, body.Name)
	if err != nil {
		if err == services.ErrUserExists {
			return utils.ErrorResponse(c, fiber.StatusConflict, types.CodeUserExists, "Email already registered")
		}
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	services.LogActivity(h.DB, &user.ID, "register", "account created", c.IP(), c.Get(fiber.HeaderUserAgent))

	return c.Status(fiber.StatusCreated).JSON(tokenResponse{Token: token, User: user.Public()})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verifies credentials and issues a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body handlers.credentialsBody true "Login credentials"
// @Success 200 {object} handlers.tokenResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body credentialsBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidation, "Invalid JSON body")
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Email == "" || body.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidation, "Email and password are required")
	}

	token, user, err := services.Login(h.DB, h.Tokens, body.Email, body.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, types.CodeInvalidCredentials, "Invalid email or password")
		}
		return utils.InternalErrorResponse(c, err, h.Cfg.IsProduction())
	}

	services.LogActivity(h.DB, &user.ID, "login", "successful login", c.IP(), c.Get(fiber.HeaderUserAgent))

	return c.Status(fiber.StatusOK).JSON(tokenResponse{Token: token, User: user.Public()})
}
