package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merch-intake/config"
	"merch-intake/repository"
)

// port 1 refuses connections immediately
const unreachableDB = "host=127.0.0.1 port=1 user=merch password=x dbname=merch sslmode=disable connect_timeout=2"

func TestOpenRepository_Memory(t *testing.T) {
	repo, conn, driver, err := OpenRepository(context.Background(), &config.Config{StorageDriver: config.StorageAuto})
	require.NoError(t, err)
	assert.Nil(t, conn)
	assert.Equal(t, config.StorageMemory, driver)
	assert.IsType(t, &repository.MemoryRequestRepository{}, repo)
}

func TestOpenRepository_AutoFallsBackToMemory(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StorageAuto, DatabaseURL: unreachableDB}

	repo, conn, driver, err := OpenRepository(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, conn)
	assert.Equal(t, config.StorageMemory, driver)
	assert.IsType(t, &repository.MemoryRequestRepository{}, repo)
}

func TestOpenRepository_ExplicitPostgresFails(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StoragePostgres, DatabaseURL: unreachableDB}

	_, _, _, err := OpenRepository(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to initialize database")
}

func TestInitialize(t *testing.T) {
	a, err := Initialize(context.Background(), &config.Config{
		StorageDriver: config.StorageMemory,
		BaseURL:       "http://localhost:8080",
	}, nil)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, config.StorageMemory, a.Storage)

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
