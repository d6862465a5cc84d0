package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gibbs-towing/fleetsite/internal/chat"
	"github.com/gibbs-towing/fleetsite/internal/editor"
	"github.com/gibbs-towing/fleetsite/internal/gallery"
	"github.com/gibbs-towing/fleetsite/internal/ingest"
	"github.com/gibbs-towing/fleetsite/internal/storage"
)

type Handler struct {
	publisher *gallery.Publisher
	editors   *editor.Manager
	assistant *chat.Assistant
	staticDir string
}

func New(publisher *gallery.Publisher, editors *editor.Manager, assistant *chat.Assistant, staticDir string) *Handler {
	return &Handler{
		publisher: publisher,
		editors:   editors,
		assistant: assistant,
		staticDir: staticDir,
	}
}

// Routes registers every endpoint on mux
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/content", h.HandleContent)
	mux.HandleFunc("/api/gallery", h.HandleGallery)
	mux.HandleFunc("/api/gallery/view", h.HandleLightbox)
	mux.HandleFunc("/api/admin/sessions", h.HandleEditorSessions)
	mux.HandleFunc("/api/admin/sessions/", h.HandleEditorSession)
	mux.HandleFunc("/api/chat", h.HandleChat)
	mux.HandleFunc("/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message)
	} else {
		slog.Debug(message, "status", code)
	}
	http.Error(w, message, code)
}

// writeEditorError maps editor, gallery, ingest and storage errors onto HTTP statuses
func (h *Handler) writeEditorError(w http.ResponseWriter, err error) {
	var sizeErr *gallery.SizeExceededError
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, editor.ErrAuth):
		code = http.StatusUnauthorized
	case errors.Is(err, editor.ErrSessionNotFound):
		code = http.StatusNotFound
	case errors.Is(err, editor.ErrIndexOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, editor.ErrInvalidState):
		code = http.StatusConflict
	case errors.As(err, &sizeErr):
		code = http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrQuotaExceeded):
		code = http.StatusInsufficientStorage
	case errors.Is(err, ingest.ErrUnsupportedFileType):
		code = http.StatusUnsupportedMediaType
	case errors.Is(err, ingest.ErrDecodeOrEncode):
		code = http.StatusUnprocessableEntity
	}
	h.writeError(w, err.Error(), code)
}
