// Package config loads the application settings from the environment and an
// optional config file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the complete application configuration.
type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	JWT      JWTConfig
	RabbitMQ RabbitMQConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level       string
	Development bool
}

type DatabaseConfig struct {
	Driver   string
	Path     string // sqlite file
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	Debug    bool
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type RabbitMQConfig struct {
	URL     string
	Queue   string
	Consume bool
}

// SetDefaults registers the default value of every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_PATH", "kassa.db")
	v.SetDefault("DATABASE_HOST", "127.0.0.1")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "kassa")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_DEBUG", false)
	v.SetDefault("JWT_SECRET", "change_me_jwt_secret")
	v.SetDefault("JWT_TTL", "3600s")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("RABBITMQ_CONSUME", false)
}

// Load reads the configuration from the environment and, when CONFIG_FILE is
// set, from that file.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config out of an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetString("APP_ENV") == "development",
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("DATABASE_DRIVER"),
			Path:     v.GetString("DATABASE_PATH"),
			Host:     v.GetString("DATABASE_HOST"),
			Port:     v.GetInt("DATABASE_PORT"),
			User:     v.GetString("DATABASE_USER"),
			Password: v.GetString("DATABASE_PASSWORD"),
			Name:     v.GetString("DATABASE_NAME"),
			SSLMode:  v.GetString("DATABASE_SSLMODE"),
			Debug:    v.GetBool("DATABASE_DEBUG"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:     v.GetString("RABBITMQ_URL"),
			Queue:   v.GetString("RABBITMQ_QUEUE"),
			Consume: v.GetBool("RABBITMQ_CONSUME"),
		},
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWT.TTL)
	}
	return cfg, nil
}

// DSN returns the postgres connection string for the configured database.
func (c DatabaseConfig) DSN() string {
	return c.dsnFor(c.Name)
}

// MaintenanceDSN points at the "postgres" database, used to create and drop
// the application database.
func (c DatabaseConfig) MaintenanceDSN() string {
	return c.dsnFor("postgres")
}

func (c DatabaseConfig) dsnFor(dbname string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, dbname, c.Port, c.SSLMode)
}
