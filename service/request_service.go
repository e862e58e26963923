package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"

	"merch-intake/models"
	"merch-intake/repository"
	"merch-intake/telemetry"
)

// RequestService validates, cleans and persists merch requests
// Implements RequestServiceInterface
type RequestService struct {
	repository repository.MerchRequestRepositoryInterface
	archiver   ArtworkArchiver
	sink       telemetry.Sink
	policy     *bluemonday.Policy
}

// NewRequestService creates a new RequestService.
// archiver and sink may be nil.
func NewRequestService(repo repository.MerchRequestRepositoryInterface, archiver ArtworkArchiver, sink telemetry.Sink) *RequestService {
	return &RequestService{
		repository: repo,
		archiver:   archiver,
		sink:       telemetry.OrNop(sink),
		policy:     bluemonday.StrictPolicy(),
	}
}

var _ RequestServiceInterface = (*RequestService)(nil)

// pendingArtwork is a decoded preview waiting to be archived
type pendingArtwork struct {
	name string
	uri  *DataURI
}

// CreateRequest sanitises and validates req, then persists it
func (s *RequestService) CreateRequest(ctx context.Context, req *models.CreateMerchRequestRequest) (*models.MerchRequest, error) {
	s.sanitizeRequest(req)
	if err := req.Validate(); err != nil {
		s.sink.Emit("request.rejected", telemetry.Fields{"reason": err.Error()})
		return nil, err
	}

	var artwork []pendingArtwork
	req.Files, artwork = s.normalizeFiles(req.Files)

	record, err := s.repository.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create merch request: %w", err)
	}

	s.archive(ctx, record.ID, artwork)
	s.sink.Emit("request.created", telemetry.Fields{
		"id":       record.ID,
		"products": len(record.Products),
		"files":    len(record.Files),
	})
	return record, nil
}

// GetRequest returns repository.ErrNotFound when no request has the given id
func (s *RequestService) GetRequest(ctx context.Context, id string) (*models.MerchRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrNotFound
	}
	return s.repository.GetByID(ctx, id)
}

// AddFiles validates files and appends them to the request
func (s *RequestService) AddFiles(ctx context.Context, id string, files []models.UploadedFile) (*models.MerchRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrNotFound
	}

	for i := range files {
		files[i].Name = s.sanitize(files[i].Name)
	}
	if err := models.ValidateFiles(files); err != nil {
		return nil, err
	}

	files, artwork := s.normalizeFiles(files)
	record, err := s.repository.AddFiles(ctx, id, files)
	if err != nil {
		return nil, err
	}

	s.archive(ctx, record.ID, artwork)
	s.sink.Emit("request.files_added", telemetry.Fields{
		"id":    record.ID,
		"added": len(files),
		"total": len(record.Files),
	})
	return record, nil
}

func (s *RequestService) normalizeFiles(files []models.UploadedFile) ([]models.UploadedFile, []pendingArtwork) {
	var artwork []pendingArtwork
	for i := range files {
		if files[i].Preview == "" {
			continue
		}
		preview, original := NormalizePreview(files[i].Preview)
		files[i].Preview = preview
		if original != nil {
			artwork = append(artwork, pendingArtwork{name: files[i].Name, uri: original})
		}
	}
	return files, artwork
}

// archive uploads decoded previews. Failures never fail the request.
func (s *RequestService) archive(ctx context.Context, requestID string, artwork []pendingArtwork) {
	if s.archiver == nil {
		return
	}
	for _, a := range artwork {
		if _, err := s.archiver.ArchiveArtwork(ctx, requestID, a.name, a.uri.MimeType, a.uri.Data); err != nil {
			log.Warn().Err(err).Str("requestId", requestID).Str("file", a.name).Msg("⚠️  Failed to archive artwork")
			s.sink.Emit("request.archive_failed", telemetry.Fields{"id": requestID, "file": a.name})
		}
	}
}

// maxSanitizePasses bounds the sanitize/unescape loop for nested entity encodings
const maxSanitizePasses = 8

// sanitize strips markup from free text while keeping plain characters like & and '.
// Entity-encoded markup is decoded and stripped again until the text is stable.
func (s *RequestService) sanitize(text string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		clean := html.UnescapeString(s.policy.Sanitize(text))
		if clean == text {
			break
		}
		text = clean
	}
	return strings.TrimSpace(text)
}

func (s *RequestService) sanitizePtr(text *string) *string {
	if text == nil {
		return nil
	}
	return models.StringPtr(s.sanitize(*text))
}

func (s *RequestService) sanitizeList(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if clean := s.sanitize(v); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func (s *RequestService) sanitizeRequest(req *models.CreateMerchRequestRequest) {
	req.ZipCode = s.sanitize(req.ZipCode)
	req.Deadline = s.sanitizePtr(req.Deadline)
	req.Budget = s.sanitizePtr(req.Budget)
	for i := range req.Products {
		req.Products[i].ID = s.sanitize(req.Products[i].ID)
		req.Products[i].Name = s.sanitize(req.Products[i].Name)
	}
	req.Colorways = s.sanitizeList(req.Colorways)
	for i := range req.CustomColors {
		req.CustomColors[i].Name = s.sanitize(req.CustomColors[i].Name)
		req.CustomColors[i].Hex = strings.TrimSpace(req.CustomColors[i].Hex)
	}
	req.PrintMethod = s.sanitizePtr(req.PrintMethod)
	req.PrintLocations = s.sanitizeList(req.PrintLocations)
	for i := range req.Files {
		req.Files[i].Name = s.sanitize(req.Files[i].Name)
	}
	req.ContactName = s.sanitize(req.ContactName)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	req.ContactPhone = s.sanitizePtr(req.ContactPhone)
	req.Company = s.sanitizePtr(req.Company)
	req.Message = s.sanitizePtr(req.Message)
}
