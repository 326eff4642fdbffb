// Package database opens the configured SQL engine and provisions it:
// database creation and removal, schema creation and fixture loading.
package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kassa/internal/config"
	"kassa/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrDatabaseExists  = errors.New("database already exists")
	ErrDatabaseMissing = errors.New("database does not exist")
)

// Open connects to the configured database. Duplicate key violations are
// translated to gorm.ErrDuplicatedKey.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateDatabase creates the configured database. It fails with
// ErrDatabaseExists unless ifNotExists is set.
func CreateDatabase(cfg config.DatabaseConfig, ifNotExists bool) error {
	exists, err := databaseExists(cfg)
	if err != nil {
		return err
	}
	if exists {
		if ifNotExists {
			return nil
		}
		return fmt.Errorf("create %s: %w", target(cfg), ErrDatabaseExists)
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := Open(cfg)
		if err != nil {
			return err
		}
		defer Close(db)
		if err := db.Exec("SELECT 1").Error; err != nil {
			return fmt.Errorf("failed to create sqlite database %s: %w", cfg.Path, err)
		}
		return nil
	case config.DriverPostgres:
		return withMaintenance(cfg, func(db *gorm.DB) error {
			return db.Exec("CREATE DATABASE " + quoteIdent(cfg.Name)).Error
		})
	}
	return fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// DropDatabase removes the configured database, disconnecting other sessions
// where the engine supports it. It fails with ErrDatabaseMissing unless
// ifExists is set.
func DropDatabase(cfg config.DatabaseConfig, ifExists bool) error {
	exists, err := databaseExists(cfg)
	if err != nil {
		return err
	}
	if !exists {
		if ifExists {
			return nil
		}
		return fmt.Errorf("drop %s: %w", target(cfg), ErrDatabaseMissing)
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.Remove(cfg.Path); err != nil {
			return fmt.Errorf("failed to remove sqlite database %s: %w", cfg.Path, err)
		}
		for _, suffix := range []string{"-journal", "-wal", "-shm"} {
			_ = os.Remove(cfg.Path + suffix)
		}
		return nil
	case config.DriverPostgres:
		return withMaintenance(cfg, func(db *gorm.DB) error {
			return db.Exec("DROP DATABASE " + quoteIdent(cfg.Name) + " WITH (FORCE)").Error
		})
	}
	return fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// CreateSchema creates the tables of every model.
func CreateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func databaseExists(cfg config.DatabaseConfig) (bool, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		_, err := os.Stat(cfg.Path)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat sqlite database %s: %w", cfg.Path, err)
	case config.DriverPostgres:
		var count int64
		err := withMaintenance(cfg, func(db *gorm.DB) error {
			return db.Raw("SELECT count(*) FROM pg_database WHERE datname = ?", cfg.Name).Scan(&count).Error
		})
		return count > 0, err
	}
	return false, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func withMaintenance(cfg config.DatabaseConfig, fn func(db *gorm.DB) error) error {
	db, err := gorm.Open(postgres.Open(cfg.MaintenanceDSN()), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer Close(db)
	if err := fn(db); err != nil {
		return fmt.Errorf("maintenance statement on %s failed: %w", cfg.Name, err)
	}
	return nil
}

func target(cfg config.DatabaseConfig) string {
	if cfg.Driver == config.DriverSQLite {
		return cfg.Path
	}
	return cfg.Name
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
