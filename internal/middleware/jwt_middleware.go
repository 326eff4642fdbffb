package middleware

import (
	"strings"

	"kassa/internal/hal"
	"kassa/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthRequired is a Fiber middleware to check for a valid token and load the
// user it was issued for.
func AuthRequired(authService *services.AuthService, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return hal.WriteProblem(c, hal.NewProblem(fiber.StatusUnauthorized, "Authorization header is required"))
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") || parts[1] == "" {
			return hal.WriteProblem(c, hal.NewProblem(fiber.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'"))
		}

		user, err := authService.Authenticate(parts[1])
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			return hal.WriteProblem(c, hal.NewProblem(fiber.StatusUnauthorized, "Invalid or expired token"))
		}

		c.Locals(LocalUsername, user.Username)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole rejects authenticated users that do not hold role. It must run
// after AuthRequired.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if current, _ := c.Locals(LocalRole).(string); current != role {
			return hal.WriteProblem(c, hal.NewProblem(fiber.StatusForbidden, "Access denied"))
		}
		return c.Next()
	}
}
