package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"COMPETENCY_APP_NAME":                      os.Getenv("COMPETENCY_APP_NAME"),
		"COMPETENCY_APP_ENV":                       os.Getenv("COMPETENCY_APP_ENV"),
		"COMPETENCY_APP_PORT":                      os.Getenv("COMPETENCY_APP_PORT"),
		"COMPETENCY_STORE_DRIVER":                  os.Getenv("COMPETENCY_STORE_DRIVER"),
		"COMPETENCY_REDIS_HOST":                    os.Getenv("COMPETENCY_REDIS_HOST"),
		"COMPETENCY_REDIS_PORT":                    os.Getenv("COMPETENCY_REDIS_PORT"),
		"COMPETENCY_DATABASE_DRIVER":               os.Getenv("COMPETENCY_DATABASE_DRIVER"),
		"COMPETENCY_DATABASE_PATH":                 os.Getenv("COMPETENCY_DATABASE_PATH"),
		"COMPETENCY_COMPETENCY_CATALOG_PATH":       os.Getenv("COMPETENCY_COMPETENCY_CATALOG_PATH"),
		"COMPETENCY_COMPETENCY_PROGRESSION_TARGET": os.Getenv("COMPETENCY_COMPETENCY_PROGRESSION_TARGET"),
		"COMPETENCY_TELEMETRY_SAMPLING_RATIO":      os.Getenv("COMPETENCY_TELEMETRY_SAMPLING_RATIO"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "competency-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "memory", cfg.Store.Driver)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "catalog.json", cfg.Competency.CatalogPath)
		assert.Equal(t, "competency:catalog", cfg.Competency.CatalogKey)
		assert.Equal(t, "competency:activities", cfg.Competency.ActivitiesKey)
		assert.Equal(t, 100.0, cfg.Competency.ProgressionTarget)
	})

	t.Run("loads values from environment variables with COMPETENCY prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMPETENCY_APP_NAME", "test-app")
		os.Setenv("COMPETENCY_APP_ENV", "testing")
		os.Setenv("COMPETENCY_APP_PORT", "9000")
		os.Setenv("COMPETENCY_STORE_DRIVER", "redis")
		os.Setenv("COMPETENCY_REDIS_HOST", "cache.local")
		os.Setenv("COMPETENCY_REDIS_PORT", "6380")
		os.Setenv("COMPETENCY_COMPETENCY_PROGRESSION_TARGET", "80")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "redis", cfg.Store.Driver)
		assert.Equal(t, "cache.local", cfg.Redis.Host)
		assert.Equal(t, 6380, cfg.Redis.Port)
		assert.Equal(t, 80.0, cfg.Competency.ProgressionTarget)
	})

	t.Run("rejects an unknown store driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMPETENCY_STORE_DRIVER", "etcd")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid store driver")
	})

	t.Run("rejects an unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMPETENCY_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid database driver")
	})

	t.Run("rejects an out-of-range sampling ratio", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMPETENCY_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling ratio")
	})

	t.Run("json log format defaults on in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("COMPETENCY_APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Log.Format)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "user=testuser")
	assert.Contains(t, dsn, "dbname=testdb")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
