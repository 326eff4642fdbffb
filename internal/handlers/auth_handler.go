package handlers

import (
	"encoding/json"
	"errors"

	"kassa/internal/hal"
	"kassa/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    services.NewValidator(),
		logger:      logger,
	}
}

// Routes returns the public authentication routes.
func (h *AuthHandler) Routes() []Route {
	return []Route{
		{Method: fiber.MethodPost, Path: "/auth/login", Handlers: chain(h.HandleLogin)},
	}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResource struct {
	Token string    `json:"token"`
	Links hal.Links `json:"_links"`
}

// HandleLogin handles user login and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return hal.WriteProblem(c, hal.NewProblem(fiber.StatusBadRequest, "Invalid request body"))
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = "This value should not be blank."
		}
		return hal.WriteProblem(c, hal.NewProblem(fiber.StatusBadRequest, "Validation failed").WithErrors(errorMessages))
	}

	token, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Info("login rejected", zap.String("username", req.Username))
			return hal.WriteProblem(c, hal.NewProblem(fiber.StatusUnauthorized, "Invalid credentials"))
		}
		h.logger.Error("login failed", zap.String("username", req.Username), zap.Error(err))
		return hal.WriteProblem(c, hal.NewProblem(fiber.StatusInternalServerError, "Could not authenticate"))
	}

	return hal.Write(c, fiber.StatusOK, tokenResource{
		Token: token,
		Links: hal.Links{"self": {Href: "/auth/login"}},
	})
}
