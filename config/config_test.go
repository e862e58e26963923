package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"ENV", "PORT", "BASE_URL", "LOG_LEVEL", "STORAGE_DRIVER", "DATABASE_URL",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"CATALOG_PATH", "CHROME_PATH", "GOOGLE_APPLICATION_CREDENTIALS",
	"ARTWORK_DRIVE_FOLDER_ID", "API_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, StorageAuto, cfg.StorageDriver)
	assert.Equal(t, StorageMemory, cfg.ResolvedStorage())
	assert.False(t, cfg.DriveEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_AutoPicksPostgresWhenConfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/merch")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.ResolvedStorage())
}

func TestLoad_DiscreteDatabaseVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "merch")
	t.Setenv("DB_NAME", "merch")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=merch password= dbname=merch sslmode=disable", cfg.DatabaseURL)
}

func TestLoad_ExplicitMemoryIgnoresDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/merch")
	t.Setenv("STORAGE_DRIVER", "Memory")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.ResolvedStorage())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("postgres without database", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "postgres")
		_, err := LoadFrom("")
		assert.ErrorContains(t, err, "requires DATABASE_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "sqlite")
		_, err := LoadFrom("")
		assert.ErrorContains(t, err, "invalid STORAGE_DRIVER")
	})

	t.Run("drive folder without credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ARTWORK_DRIVE_FOLDER_ID", "folder")
		_, err := LoadFrom("")
		assert.ErrorContains(t, err, "GOOGLE_APPLICATION_CREDENTIALS")
	})
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=:9090\nAPI_URL=http://api.local/\n"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port, "leading colon is stripped")
	assert.Equal(t, "http://api.local", cfg.APIURL)
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := SetupLogging(&Config{Env: "production", LogLevel: "warn"}, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
