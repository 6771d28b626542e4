package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	storage string
	pinger  Pinger
	logger  Logger
}

// NewHandler pinger может быть nil, тогда хранилище считается доступным
func NewHandler(storage string, pinger Pinger, logger Logger) *Handler {
	return &Handler{
		storage: storage,
		pinger:  pinger,
		logger:  logger,
	}
}

// Handle GET /api/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Status: statusOK, Storage: h.storage}
	code := http.StatusOK

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - Storage ping failed: storage=%s, error=%v", h.storage, err)
			resp.Status = statusUnavailable
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
