package create_booking

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MoNiLBaRiYa/BookIt/internal/api/handlers"
	createBooking "github.com/MoNiLBaRiYa/BookIt/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgSlotNotFound       = "Slot not found"
	msgExperienceNotFound = "Experience not found"
	msgSlotMismatch       = "Slot does not belong to this experience"
	msgCreated            = "Booking created successfully"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var capErr *createBooking.CapacityError

		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, validationMessage(err))

		case errors.As(err, &capErr):
			h.logger.Warn("POST /bookings - Insufficient capacity: slot_id=%d, requested=%d, available=%d",
				req.SlotID, capErr.Requested, capErr.Available)
			handlers.RespondConflict(w, fmt.Sprintf("Only %d spots available", capErr.Available))

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrExperienceNotFound):
			h.logger.Warn("POST /bookings - Experience not found: experience_id=%d", req.ExperienceID)
			handlers.RespondNotFound(w, msgExperienceNotFound)

		case errors.Is(err, createBooking.ErrSlotExperienceMismatch):
			h.logger.Warn("POST /bookings - Slot mismatch: slot_id=%d, experience_id=%d", req.SlotID, req.ExperienceID)
			handlers.RespondBadRequest(w, msgSlotMismatch)

		case errors.Is(err, createBooking.ErrPersistence):
			h.logger.Error("POST /bookings - Persistence failure: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, slot_id=%d",
		result.BookingID, result.SlotID)
	handlers.RespondCreated(w, msgCreated, FromUseCaseResponse(result))
}

// validationMessage текст ошибки валидации без префикса пакета
func validationMessage(err error) string {
	msg := err.Error()
	prefix := createBooking.ErrInvalidInput.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return "Missing required fields"
}
