package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"merch-intake/app/controller"
	"merch-intake/app/router"
	"merch-intake/config"
	"merch-intake/db"
	"merch-intake/repository"
	"merch-intake/service"
	"merch-intake/telemetry"
)

// App is the wired HTTP application
type App struct {
	Handler http.Handler
	Catalog *service.CatalogService
	Storage config.StorageDriver

	conn *sql.DB
}

// OpenRepository selects the storage strategy once. With STORAGE_DRIVER=auto a
// failing database falls back to memory; an explicit postgres driver fails.
func OpenRepository(ctx context.Context, cfg *config.Config) (repository.MerchRequestRepositoryInterface, *sql.DB, config.StorageDriver, error) {
	driver := cfg.ResolvedStorage()
	if driver == config.StorageMemory {
		log.Info().Msg("💾 Using in-memory storage")
		return repository.NewMemoryRequestRepository(), nil, config.StorageMemory, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(ctx, conn)
		if err != nil {
			conn.Close()
		}
	}
	if err != nil {
		if cfg.StorageDriver == config.StoragePostgres {
			return nil, nil, "", fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Warn().Err(err).Msg("⚠️  Database unavailable, falling back to in-memory storage")
		return repository.NewMemoryRequestRepository(), nil, config.StorageMemory, nil
	}

	log.Info().Msg("🐘 Using PostgreSQL storage")
	return repository.NewPostgresRequestRepository(conn), conn, config.StoragePostgres, nil
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, sink telemetry.Sink) (*App, error) {
	// Initialize repositories
	repo, conn, driver, err := OpenRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var archiver service.ArtworkArchiver
	if cfg.DriveEnabled() {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath, cfg.ArtworkDriveFolderID)
		if err != nil {
			closeConn(conn)
			return nil, err
		}
		archiver = driveService
		log.Info().Str("folderId", cfg.ArtworkDriveFolderID).Msg("📁 Archiving artwork to Google Drive")
	}

	// Initialize services
	catalog, err := service.NewCatalogService(cfg.CatalogPath)
	if err != nil {
		closeConn(conn)
		return nil, err
	}
	if err := catalog.Watch(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Catalog hot reload disabled")
	}

	requests := service.NewRequestService(repo, archiver, sink)
	summary, err := service.NewSummaryService(requests, catalog, cfg.BaseURL, cfg.ChromePath)
	if err != nil {
		closeConn(conn)
		return nil, err
	}

	// Initialize controllers
	controllers := &router.Controllers{
		Request: controller.NewRequestController(requests, summary),
		Catalog: controller.NewCatalogController(catalog),
	}

	return &App{
		Handler: router.NewHandler(controllers),
		Catalog: catalog,
		Storage: driver,
		conn:    conn,
	}, nil
}

// Close releases the database connection, if any
func (a *App) Close() {
	closeConn(a.conn)
}

func closeConn(conn *sql.DB) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Msg("⚠️  Error closing database")
	}
}
