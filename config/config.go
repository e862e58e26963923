package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"merch-intake/db"
)

// StorageDriver selects the merch request repository
type StorageDriver string

const (
	StorageAuto     StorageDriver = "auto"
	StorageMemory   StorageDriver = "memory"
	StoragePostgres StorageDriver = "postgres"
)

// Config holds every runtime setting. It is read once at process start.
type Config struct {
	Env      string
	Port     string
	BaseURL  string
	LogLevel string

	StorageDriver StorageDriver
	DatabaseURL   string

	CatalogPath string
	ChromePath  string

	GoogleCredentialsPath string
	ArtworkDriveFolderID  string

	// APIURL is where the terminal wizard submits requests
	APIURL string
}

// IsProduction reports whether ENV=production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads .env from the working directory (outside production) and the environment
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit .env path
func LoadFrom(envFile string) (*Config, error) {
	if os.Getenv("ENV") != "production" && envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Debug().Str("path", envFile).Msg("⚠️  .env file not found, using system environment variables")
		} else {
			log.Info().Str("path", envFile).Msg("Loaded environment variables")
		}
	}

	v := viper.New()
	v.SetDefault("env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("storage_driver", string(StorageAuto))
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("api_url", "http://localhost:8080")
	v.AutomaticEnv()

	port := strings.TrimPrefix(v.GetString("port"), ":")

	cfg := &Config{
		Env:           v.GetString("env"),
		Port:          port,
		BaseURL:       v.GetString("base_url"),
		LogLevel:      v.GetString("log_level"),
		StorageDriver: StorageDriver(strings.ToLower(strings.TrimSpace(v.GetString("storage_driver")))),
		DatabaseURL: db.ConnString(
			v.GetString("database_url"),
			v.GetString("db_host"),
			v.GetString("db_port"),
			v.GetString("db_user"),
			v.GetString("db_password"),
			v.GetString("db_name"),
			v.GetString("db_sslmode"),
		),
		CatalogPath:           v.GetString("catalog_path"),
		ChromePath:            v.GetString("chrome_path"),
		GoogleCredentialsPath: v.GetString("google_application_credentials"),
		ArtworkDriveFolderID:  v.GetString("artwork_drive_folder_id"),
		APIURL:                strings.TrimRight(v.GetString("api_url"), "/"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be fixed with a default
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageAuto, StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORAGE_DRIVER=postgres requires DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: expected auto, memory or postgres", c.StorageDriver)
	}
	if c.ArtworkDriveFolderID != "" && c.GoogleCredentialsPath == "" {
		return fmt.Errorf("ARTWORK_DRIVE_FOLDER_ID requires GOOGLE_APPLICATION_CREDENTIALS")
	}
	return nil
}

// ResolvedStorage turns auto into a concrete driver
func (c *Config) ResolvedStorage() StorageDriver {
	if c.StorageDriver != StorageAuto {
		return c.StorageDriver
	}
	if c.DatabaseURL != "" {
		return StoragePostgres
	}
	return StorageMemory
}

// DriveEnabled reports whether artwork previews are archived to Google Drive
func (c *Config) DriveEnabled() bool {
	return c.ArtworkDriveFolderID != "" && c.GoogleCredentialsPath != ""
}
