package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"merch-intake/models"
	"merch-intake/repository"
	"merch-intake/service"
)

// RequestController handles HTTP requests for merch requests
type RequestController struct {
	service service.RequestServiceInterface
	summary service.SummaryServiceInterface
}

// NewRequestController creates a new RequestController. summary may be nil.
func NewRequestController(svc service.RequestServiceInterface, summary service.SummaryServiceInterface) *RequestController {
	return &RequestController{
		service: svc,
		summary: summary,
	}
}

// CreateRequest handles POST /api/requests
// Example request:
// POST /api/requests
//
//	{
//	  "zipCode": "94110",
//	  "products": [{"id": "tee", "name": "T-Shirt", "quantity": 120}],
//	  "colorways": ["Black"],
//	  "contactName": "Sam Rivera",
//	  "contactEmail": "sam@example.com"
//	}
//
// Responds 201 with the stored request, including id and createdAt.
func (c *RequestController) CreateRequest(w http.ResponseWriter, r *http.Request) {
	log.Info().Str("method", r.Method).Str("path", r.URL.Path).Msg("📥 CreateRequest: Received request")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.CreateMerchRequestRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("❌ CreateRequest: Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request data", models.FieldError{Field: "body", Message: err.Error()})
		return
	}

	record, err := c.service.CreateRequest(r.Context(), &req)
	if err != nil {
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warn().Int("fields", len(verrs)).Msg("❌ CreateRequest: Validation failed")
			writeError(w, http.StatusBadRequest, "Invalid request data", verrs...)
			return
		}
		log.Error().Err(err).Msg("❌ CreateRequest: Error creating request")
		writeError(w, http.StatusInternalServerError, "Failed to create request")
		return
	}

	log.Info().Str("id", record.ID).Msg("✅ CreateRequest: Successfully created request")
	writeJSON(w, http.StatusCreated, record)
}

// GetRequest handles GET /api/requests/:id
func (c *RequestController) GetRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, _ := RequestPath(r.URL.Path)
	record, err := c.service.GetRequest(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Request not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("❌ GetRequest: Error fetching request")
		writeError(w, http.StatusInternalServerError, "Failed to fetch request")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// AddFiles handles POST /api/requests/:id/files
// Example request:
// POST /api/requests/5f0c.../files
//
//	[{"id": "f2", "name": "back.png", "type": "image/png", "size": 52311}]
//
// Responds 200 with the updated request; earlier files are kept.
func (c *RequestController) AddFiles(w http.ResponseWriter, r *http.Request) {
	id, _ := RequestPath(r.URL.Path)
	log.Info().Str("id", id).Msg("📥 AddFiles: Received request")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var files []models.UploadedFile
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&files); err != nil {
		log.Warn().Err(err).Msg("❌ AddFiles: Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid files data", models.FieldError{Field: "body", Message: err.Error()})
		return
	}

	record, err := c.service.AddFiles(r.Context(), id, files)
	if err != nil {
		var verrs models.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			writeError(w, http.StatusBadRequest, "Invalid files data", verrs...)
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Request not found")
		default:
			log.Error().Err(err).Str("id", id).Msg("❌ AddFiles: Error adding files")
			writeError(w, http.StatusInternalServerError, "Failed to add files")
		}
		return
	}

	log.Info().Str("id", id).Int("added", len(files)).Int("total", len(record.Files)).Msg("✅ AddFiles: Files attached")
	writeJSON(w, http.StatusOK, record)
}

// GetSummary handles GET /api/requests/:id/summary?format=html|pdf
// html is the default format.
func (c *RequestController) GetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if c.summary == nil {
		writeError(w, http.StatusNotFound, "Summary not available")
		return
	}

	id, _ := RequestPath(r.URL.Path)
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}

	var (
		body        []byte
		err         error
		contentType string
	)
	switch format {
	case "html":
		body, err = c.summary.RenderHTML(r.Context(), id)
		contentType = "text/html; charset=utf-8"
	case "pdf":
		log.Info().Str("id", id).Msg("📄 GetSummary: Generating PDF")
		body, err = c.summary.RenderPDF(r.Context(), id)
		contentType = "application/pdf"
	default:
		writeError(w, http.StatusBadRequest, "format must be html or pdf")
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Request not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("format", format).Msg("❌ GetSummary: Error rendering summary")
		writeError(w, http.StatusInternalServerError, "Failed to render summary")
		return
	}

	w.Header().Set("Content-Type", contentType)
	if format == "pdf" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"request-%s.pdf\"", id))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("❌ GetSummary: Error writing response")
	}
}
