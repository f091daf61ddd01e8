// internal/importer/handler.go
package importer

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// maxImportBytes bounds a single upload.
const maxImportBytes = 5 << 20

type Handler struct {
	service     Service
	rateLimiter *rate.Limiter
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rate.NewLimiter(rate.Every(10*time.Second), 3), // bulk imports are not an interactive operation
	}
}

// Routes mounts the import endpoint.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.handleImport)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow() {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.service.Import(r.Context(), string(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Row-level errors are data, not an HTTP failure.
	json.NewEncoder(w).Encode(report)
}
