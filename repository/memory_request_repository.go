package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"merch-intake/models"
)

// MemoryRequestRepository keeps merch requests in process memory.
// Used when no database is configured.
type MemoryRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*models.MerchRequest
	now      func() time.Time
}

// NewMemoryRequestRepository creates an empty MemoryRequestRepository
func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{
		requests: make(map[string]*models.MerchRequest),
		now:      time.Now,
	}
}

// Ensure MemoryRequestRepository implements MerchRequestRepositoryInterface
var _ MerchRequestRepositoryInterface = (*MemoryRequestRepository)(nil)

// Create stores a new request under a random UUID
func (r *MemoryRequestRepository) Create(ctx context.Context, req *models.CreateMerchRequestRequest) (*models.MerchRequest, error) {
	record := &models.MerchRequest{
		ID:             uuid.NewString(),
		ZipCode:        req.ZipCode,
		Deadline:       cloneString(req.Deadline),
		Budget:         cloneString(req.Budget),
		Products:       cloneSlice(req.Products),
		Colorways:      cloneSlice(req.Colorways),
		CustomColors:   cloneSlice(req.CustomColors),
		PrintMethod:    cloneString(req.PrintMethod),
		PrintLocations: cloneSlice(req.PrintLocations),
		Files:          cloneSlice(req.Files),
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   cloneString(req.ContactPhone),
		Company:        cloneString(req.Company),
		Message:        cloneString(req.Message),
		CreatedAt:      r.now().UTC(),
	}

	r.mu.Lock()
	r.requests[record.ID] = record
	r.mu.Unlock()

	log.Debug().Str("id", record.ID).Msg("💾 Create: stored merch request in memory")
	return copyRequest(record), nil
}

// GetByID returns a copy of the stored request
func (r *MemoryRequestRepository) GetByID(ctx context.Context, id string) (*models.MerchRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRequest(record), nil
}

// AddFiles appends files to the stored request
func (r *MemoryRequestRepository) AddFiles(ctx context.Context, id string, files []models.UploadedFile) (*models.MerchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := copyRequest(record)
	updated.Files = append(updated.Files, files...)
	r.requests[id] = updated

	log.Debug().Str("id", id).Int("added", len(files)).Int("total", len(updated.Files)).Msg("💾 AddFiles: appended files in memory")
	return copyRequest(updated), nil
}

func copyRequest(src *models.MerchRequest) *models.MerchRequest {
	dst := *src
	dst.Deadline = cloneString(src.Deadline)
	dst.Budget = cloneString(src.Budget)
	dst.Products = cloneSlice(src.Products)
	dst.Colorways = cloneSlice(src.Colorways)
	dst.CustomColors = cloneSlice(src.CustomColors)
	dst.PrintMethod = cloneString(src.PrintMethod)
	dst.PrintLocations = cloneSlice(src.PrintLocations)
	dst.Files = cloneSlice(src.Files)
	dst.ContactPhone = cloneString(src.ContactPhone)
	dst.Company = cloneString(src.Company)
	dst.Message = cloneString(src.Message)
	return &dst
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// cloneSlice keeps nil as nil so absent fields still encode as null
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
