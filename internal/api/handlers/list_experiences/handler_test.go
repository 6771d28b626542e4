package list_experiences

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoNiLBaRiYa/BookIt/internal/api/handlers"
	"github.com/MoNiLBaRiYa/BookIt/internal/infra/memory"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/catalog"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/catalog/models"
	"github.com/MoNiLBaRiYa/BookIt/pkg/logger"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	store := memory.NewStore()
	memory.Seed(store, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	svc := catalog.NewService(store.Experiences(), store.Slots(), logger.Discard())
	return NewHandler(svc, logger.Discard())
}

func list(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_List(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		target string
		want   int
	}{
		{target: "/api/experiences", want: 8},
		{target: "/api/experiences?category=All", want: 8},
		{target: "/api/experiences?category=Water%20Sports", want: 2},
		{target: "/api/experiences?minPrice=2500&maxPrice=4500", want: 4},
		{target: "/api/experiences?search=RAJASTHAN", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := list(h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Success bool                        `json:"success"`
				Data    []models.ExperienceResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.True(t, body.Success)
			assert.Len(t, body.Data, tt.want)
		})
	}
}

func TestHandler_EmptyResultIsArray(t *testing.T) {
	rec := list(newHandler(t), "/api/experiences?search=antarctica")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestHandler_BadQuery(t *testing.T) {
	h := newHandler(t)

	for target, wantErr := range map[string]string{
		"/api/experiences?minPrice=cheap":             "minPrice must be a number",
		"/api/experiences?minPrice=900&maxPrice=100": "minPrice is greater than maxPrice",
		"/api/experiences?maxPrice=-5":                "maxPrice must not be negative",
	} {
		rec := list(h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body handlers.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, wantErr, body.Error, target)
	}
}

type failingCatalog struct{}

func (failingCatalog) List(context.Context, *models.ListRequest) ([]models.ExperienceResponse, error) {
	return nil, catalog.ErrInternal
}

func TestHandler_InternalError(t *testing.T) {
	rec := list(NewHandler(failingCatalog{}, logger.Discard()), "/api/experiences")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
