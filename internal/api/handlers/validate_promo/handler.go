package validate_promo

import (
	"errors"
	"net/http"

	"github.com/MoNiLBaRiYa/BookIt/internal/api/handlers"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/promotions"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "Promo code and a positive amount are required"
	msgInvalidCode        = "Invalid promo code"
)

type Handler struct {
	service PromotionService
	logger  Logger
}

func NewHandler(service PromotionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/promo/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidatePromoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promo/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Validate(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, promotions.ErrInvalidInput):
			h.logger.Warn("POST /promo/validate - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, promotions.ErrInvalidCode):
			h.logger.Warn("POST /promo/validate - Unknown code: %q", req.Code)
			handlers.RespondNotFound(w, msgInvalidCode)

		default:
			h.logger.Error("POST /promo/validate - Failed to validate promo code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /promo/validate - Promo code applied: code=%s", result.Code)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
