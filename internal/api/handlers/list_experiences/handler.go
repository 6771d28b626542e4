package list_experiences

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MoNiLBaRiYa/BookIt/internal/api/handlers"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/catalog"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/experiences
// Query params: category, minPrice, maxPrice, search (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /experiences - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	experiences, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /experiences - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), catalog.ErrInvalidInput.Error()+": "))

		default:
			h.logger.Error("GET /experiences - Failed to list experiences: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /experiences - Listed %d experiences", len(experiences))
	handlers.RespondJSON(w, http.StatusOK, experiences)
}
