// Package server assembles the HTTP application from an explicit route table.
package server

import (
	"time"

	"kassa/internal/config"
	"kassa/internal/handlers"
	"kassa/internal/hal"
	"kassa/internal/middleware"
	"kassa/internal/models"
	"kassa/internal/repositories"
	"kassa/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the collaborators NewApp wires together.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Products  repositories.ProductRepository
	VatClass  repositories.VatClassRepository
	Users     repositories.UserRepository
	Publisher services.EventPublisher // optional
	// Ping reports database health; nil skips the check.
	Ping func() error
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// GORMDependencies backs every repository with db.
func GORMDependencies(cfg *config.Config, log *zap.Logger, db *gorm.DB) Dependencies {
	return Dependencies{
		Config:   cfg,
		Logger:   log,
		Products: repositories.NewGORMProductRepository(db),
		VatClass: repositories.NewGORMVatClassRepository(db),
		Users:    repositories.NewGORMUserRepository(db),
		Ping: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		},
	}
}

// NewApp builds the fiber application and the auth service it verifies
// tokens with.
func NewApp(deps Dependencies) (*fiber.App, *services.AuthService) {
	authService := services.NewAuthService(deps.Users, deps.Config.JWT.Secret, deps.Config.JWT.TTL)
	productService := services.NewProductService(deps.Products, deps.VatClass, deps.Publisher, deps.Logger)

	productHandler := handlers.NewProductHandler(productService, deps.Logger)
	authHandler := handlers.NewAuthHandler(authService, deps.Logger)

	guards := handlers.Guards{
		Authenticated: middleware.AuthRequired(authService, deps.Logger),
		Admin:         middleware.RequireRole(models.RoleAdmin),
	}

	app := fiber.New(fiber.Config{
		AppName:      "kassa",
		ErrorHandler: hal.ErrorHandler(deps.Logger),
	})
	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}

	for _, r := range Routes(productHandler, authHandler, guards, deps.Ping) {
		app.Add(r.Method, r.Path, r.Handlers...)
	}
	return app, authService
}

// Routes is the route table of the application.
func Routes(products *handlers.ProductHandler, auth *handlers.AuthHandler, guards handlers.Guards, ping func() error) []handlers.Route {
	routes := []handlers.Route{
		{Method: fiber.MethodGet, Path: "/health", Handlers: []fiber.Handler{healthHandler(ping)}},
	}
	routes = append(routes, auth.Routes()...)
	routes = append(routes, products.Routes(guards)...)
	return routes
}

func healthHandler(ping func() error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, database := "healthy", "connected"
		code := fiber.StatusOK
		if ping != nil {
			if err := ping(); err != nil {
				status, database = "unhealthy", "unreachable"
				code = fiber.StatusServiceUnavailable
			}
		}
		return hal.Write(c, code, fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
			"_links":   hal.Links{"self": {Href: "/health"}},
		})
	}
}
