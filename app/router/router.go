package router

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"merch-intake/app/controller"
)

type Controllers struct {
	Request *controller.RequestController
	Catalog *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not found"}`))
}

// SetupRoutes registers every API route on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog
	mux.HandleFunc("/api/catalog", controllers.Catalog.GetCatalog)

	// Create merch request
	mux.HandleFunc("/api/requests", controllers.Request.CreateRequest)

	// Merch request by id, its files and its summary sheet
	mux.HandleFunc("/api/requests/", func(w http.ResponseWriter, r *http.Request) {
		id, action := controller.RequestPath(r.URL.Path)
		if id == "" {
			controllers.Request.CreateRequest(w, r)
			return
		}
		switch action {
		case "":
			controllers.Request.GetRequest(w, r)
		case "files":
			controllers.Request.AddFiles(w, r)
		case "summary":
			controllers.Request.GetSummary(w, r)
		default:
			notFound(w)
		}
	})
}

// statusRecorder captures the status code for access logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// WithRecovery turns panics into a JSON 500 and writes one access log line per request
func WithRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				log.Error().Interface("panic", p).Str("path", r.URL.Path).Msg("💥 Handler panicked")
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				rec.Write([]byte(`{"error":"Internal server error"}`))
			}
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		}()
		next.ServeHTTP(rec, r)
	})
}

// NewHandler builds the complete HTTP handler
func NewHandler(controllers *Controllers) http.Handler {
	mux := http.NewServeMux()
	SetupRoutes(mux, controllers)
	return WithRecovery(mux)
}
