package get_experience

import (
	"errors"
	"net/http"

	"github.com/MoNiLBaRiYa/BookIt/internal/api/handlers"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/catalog"
)

const (
	msgInvalidExperienceID = "Invalid experience ID"
	msgNotFound            = "Experience not found"
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

// Handle GET /api/experiences/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	experienceID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /experiences/{id} - Invalid experience ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExperienceID)
		return
	}

	details, err := h.service.Get(r.Context(), experienceID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /experiences/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExperienceID)

		case errors.Is(err, catalog.ErrExperienceNotFound):
			h.logger.Warn("GET /experiences/{id} - Experience not found: experience_id=%d", experienceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /experiences/{id} - Failed to get experience: experience_id=%d, error=%v", experienceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /experiences/{id} - Experience retrieved: experience_id=%d, slots=%d", experienceID, len(details.Slots))
	handlers.RespondJSON(w, http.StatusOK, details)
}
