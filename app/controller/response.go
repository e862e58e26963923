package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"merch-intake/models"
)

// maxBodyBytes bounds request bodies; file previews travel as data URIs
const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("❌ Error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, message string, details ...models.FieldError) {
	writeJSON(w, status, models.ErrorResponse{Error: message, Details: details})
}

// RequestPath splits /api/requests/{id}[/{action}] into id and action
func RequestPath(path string) (id, action string) {
	rest := strings.Trim(strings.TrimPrefix(path, "/api/requests"), "/")
	id, action, _ = strings.Cut(rest, "/")
	return id, action
}
