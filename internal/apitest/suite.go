// Package apitest drives the HTTP API end to end: it provisions a throwaway
// database through the console commands, resets fixtures before every test
// and sends authenticated requests against the application.
package apitest

import (
	"errors"
	"fmt"
	"testing"

	"kassa/internal/config"
	"kassa/internal/console"
	"kassa/internal/database"
	"kassa/internal/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenGenerator signs tokens for a username.
type TokenGenerator interface {
	GenerateToken(username string) (string, error)
}

// Suite is the per test binary context. Build it once in TestMain and share
// it between tests; it assumes exclusive ownership of the configured database.
type Suite struct {
	Config *config.Config
	Logger *zap.Logger
	Runner *console.Runner
	App    *fiber.App
	// Client sends the requests. SetUpSuite defaults it to the in-process
	// application; set an HTTPClient beforehand to target a live server.
	Client Doer
	Tokens TokenGenerator

	db *gorm.DB
}

func NewSuite(cfg *config.Config, logger *zap.Logger) *Suite {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Suite{
		Config: cfg,
		Logger: logger,
		Runner: console.NewRunner(console.Options{Config: cfg, Logger: logger}),
	}
}

// SetUpSuite provisions a fresh empty database with its schema and builds
// the application on top of it.
func (s *Suite) SetUpSuite() error {
	for _, command := range []string{
		"database:drop --force --if-exists",
		"database:create",
		"schema:create",
	} {
		if err := s.RunCommand(command); err != nil {
			return err
		}
	}

	db, err := database.Open(s.Config.Database)
	if err != nil {
		return err
	}
	s.db = db

	app, auth := server.NewApp(server.GORMDependencies(s.Config, s.Logger, db))
	s.App = app
	if s.Tokens == nil {
		s.Tokens = auth
	}
	if s.Client == nil {
		s.Client = NewFiberClient(app)
	}
	return nil
}

// TearDownSuite closes the connection and drops the database.
func (s *Suite) TearDownSuite() error {
	var closeErr error
	if s.db != nil {
		closeErr = database.Close(s.db)
		s.db = nil
	}
	return errors.Join(closeErr, s.RunCommand("database:drop --force"))
}

// SetUp resets the database to the fixture dataset. Call it first in every
// test.
func (s *Suite) SetUp(t testing.TB) {
	t.Helper()
	if err := s.RunCommand("fixtures:load -n"); err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
}

// RunCommand runs a console command quietly.
func (s *Suite) RunCommand(command string) error {
	if err := s.Runner.Run(command); err != nil {
		return fmt.Errorf("apitest: %w", err)
	}
	return nil
}
