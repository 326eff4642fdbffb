package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"kassa/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Port)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "kassa.db", cfg.Database.Path)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, "product_events", cfg.RabbitMQ.Queue)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("APP_ENV", "production")
	v.Set("DATABASE_DRIVER", config.DriverPostgres)
	v.Set("DATABASE_NAME", "kassa_test")
	v.Set("JWT_TTL", "15m")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.False(t, cfg.Log.Development)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "host=127.0.0.1 user=postgres password=postgres dbname=kassa_test port=5432 sslmode=disable", cfg.Database.DSN())
	assert.Contains(t, cfg.Database.MaintenanceDSN(), "dbname=postgres")
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DATABASE_DRIVER", "oracle")
	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "unsupported database driver")

	v = viper.New()
	config.SetDefaults(v)
	v.Set("JWT_TTL", "0s")
	_, err = config.FromViper(v)
	assert.ErrorContains(t, err, "JWT_TTL")
}

func TestLoad_ConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "kassa.yaml")
	require.NoError(t, os.WriteFile(file, []byte("APP_PORT: \":9090\"\nDATABASE_PATH: /tmp/other.db\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.App.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := config.Load()
	assert.Error(t, err)
}
