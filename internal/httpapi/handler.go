// Package httpapi provides the HTTP handlers for the AURA API.
//
// Domain failures (provider exhaustion, stub scan problems) ship as HTTP 200
// with success:false so older clients that only read the boolean keep
// working. Only requests that never reach the domain (unparseable JSON,
// missing uploads) get a 400.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"aura/internal/command"
	"aura/internal/scan"
	"aura/internal/store"

	"github.com/go-chi/chi/v5"
)

// ProviderStatus exposes orchestrator state for /api/status.
type ProviderStatus interface {
	Current() string
	Available() []string
}

// Handler serves the AURA API.
type Handler struct {
	router   *command.Router
	status   ProviderStatus
	analyzer scan.Analyzer
	log      store.TranscriptLog
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandler creates a Handler with its dependencies.
func NewHandler(router *command.Router, status ProviderStatus, analyzer scan.Analyzer, log store.TranscriptLog, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if log == nil {
		log = store.Nop{}
	}
	return &Handler{
		router:   router,
		status:   status,
		analyzer: analyzer,
		log:      log,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterRoutes mounts the API endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/aura/process", h.Process)
	r.Post("/api/voice/process", h.ProcessVoice)
	r.Post("/api/scan/image", h.ScanImage)
	r.Post("/api/scan/document", h.ScanDocument)
	r.Get("/api/status", h.Status)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// decodeJSON decodes a JSON request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// Error writes a JSON failure envelope. Every envelope carries a timestamp,
// failures included.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]interface{}{
		"success":   false,
		"message":   message,
		"timestamp": h.timestamp(),
	})
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}

// Status reports the orchestrator and feature state.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"currentActiveAPI": h.status.Current(),
		"availableAPIs":    h.status.Available(),
		"systemStatus":     "operational",
		"features": []string{
			"voice_chat",
			"focus_timer",
			"safe_mode",
			"ai_clone",
			"document_scan",
			"mode_switch",
		},
		"timestamp": h.timestamp(),
	})
}
