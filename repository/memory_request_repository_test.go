package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merch-intake/models"
)

func sampleCreateRequest() *models.CreateMerchRequestRequest {
	return &models.CreateMerchRequestRequest{
		ZipCode:      "94110",
		Products:     []models.ProductLine{{ID: "tee", Name: "T-Shirt", Quantity: 50}},
		Colorways:    []string{"Black"},
		Files:        []models.UploadedFile{{ID: "f1", Name: "logo.svg", Type: "image/svg+xml", Size: 45600}},
		ContactName:  "Sam Rivera",
		ContactEmail: "sam@example.com",
	}
}

func TestMemoryRequestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRequestRepository()

	created, err := repo.Create(ctx, sampleCreateRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.Deadline)
	assert.Nil(t, created.CustomColors)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	// returned values are copies
	got.Colorways[0] = "mutated"
	again, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Black", again.Colorways[0])
}

func TestMemoryRequestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRequestRepository()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.AddFiles(ctx, "missing", []models.UploadedFile{{ID: "x"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRequestRepository_AddFilesAppends(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRequestRepository()
	created, err := repo.Create(ctx, sampleCreateRequest())
	require.NoError(t, err)

	updated, err := repo.AddFiles(ctx, created.ID, []models.UploadedFile{
		{ID: "f2", Name: "back.png", Type: "image/png", Size: 1024},
		{ID: "f3", Name: "brief.pdf", Type: "application/pdf", Size: 2048},
	})
	require.NoError(t, err)
	require.Len(t, updated.Files, 3)
	assert.Equal(t, []string{"f1", "f2", "f3"}, fileIDs(updated.Files))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Files, stored.Files)
}

func TestMemoryRequestRepository_AddFilesToRequestWithoutFiles(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRequestRepository()
	req := sampleCreateRequest()
	req.Files = nil
	created, err := repo.Create(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, created.Files)

	updated, err := repo.AddFiles(ctx, created.ID, []models.UploadedFile{{ID: "f1", Name: "a.png", Type: "image/png"}})
	require.NoError(t, err)
	assert.Len(t, updated.Files, 1)
}

func TestMemoryRequestRepository_ConcurrentAddFiles(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRequestRepository()
	created, err := repo.Create(ctx, sampleCreateRequest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddFiles(ctx, created.ID, []models.UploadedFile{{ID: "x", Name: "x.png", Type: "image/png"}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Files, 21)
}

func fileIDs(files []models.UploadedFile) []string {
	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.ID
	}
	return ids
}
