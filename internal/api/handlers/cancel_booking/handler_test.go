package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoNiLBaRiYa/BookIt/internal/api/handlers"
	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	"github.com/MoNiLBaRiYa/BookIt/internal/infra/memory"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/bookings"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/bookings/models"
	"github.com/MoNiLBaRiYa/BookIt/pkg/logger"
)

func newRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{id}/cancel", h.Handle).Methods(http.MethodPatch)
	return router
}

func cancel(router http.Handler, id int64) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/cancel", id), nil))
	return rec
}

func TestHandler_CancelReleasesSpots(t *testing.T) {
	store := memory.NewStore()
	exp := store.AddExperience(domain.Experience{Title: "Scuba Diving", Price: decimal.NewFromInt(4500)})
	slot := store.AddSlot(domain.Slot{
		ExperienceID:   exp.ID,
		Date:           time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC),
		StartTime:      "06:00",
		EndTime:        "09:00",
		TotalSpots:     10,
		AvailableSpots: 10,
	})

	var booking *domain.Booking
	err := store.TxManager().Do(context.Background(), func(ctx context.Context) error {
		if _, err := store.Slots().Reserve(ctx, slot.ID, 3); err != nil {
			return err
		}
		var err error
		booking, err = store.Bookings().Create(ctx, &domain.Booking{
			ExperienceID:   exp.ID,
			SlotID:         slot.ID,
			CustomerName:   "Meera",
			CustomerEmail:  "meera@example.com",
			CustomerPhone:  "555",
			NumberOfPeople: 3,
			TotalPrice:     decimal.NewFromInt(13500),
			Status:         domain.StatusConfirmed,
		})
		return err
	})
	require.NoError(t, err)

	svc := bookings.NewService(store.Bookings(), store.Slots(), store.TxManager(), logger.Discard())
	router := newRouter(NewHandler(svc, logger.Discard()))

	rec := cancel(router, booking.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(domain.StatusCancelled), body.Data.Status)
	assert.NotNil(t, body.Data.CancelledAt)

	got, err := store.Slots().GetByID(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.AvailableSpots)

	rec = cancel(router, booking.ID)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var envelope handlers.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, msgCannotCancel, envelope.Error)

	rec = cancel(router, booking.ID+100)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_InvalidID(t *testing.T) {
	store := memory.NewStore()
	svc := bookings.NewService(store.Bookings(), store.Slots(), store.TxManager(), logger.Discard())
	router := newRouter(NewHandler(svc, logger.Discard()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/bookings/x/cancel", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
