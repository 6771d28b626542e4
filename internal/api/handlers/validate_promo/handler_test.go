package validate_promo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoNiLBaRiYa/BookIt/internal/api/handlers"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/promotions"
	"github.com/MoNiLBaRiYa/BookIt/pkg/logger"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	table, err := promotions.NewTable(promotions.DefaultRules())
	require.NoError(t, err)
	return NewHandler(promotions.NewService(table, logger.Discard()), logger.Discard())
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/promo/validate", strings.NewReader(body)))
	return rec
}

func TestHandler_Discounts(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		body      string
		wantCode  string
		wantFinal float64
	}{
		{body: `{"code":"save10","amount":3000}`, wantCode: "SAVE10", wantFinal: 2700},
		{body: `{"code":"FLAT100","amount":40}`, wantCode: "FLAT100", wantFinal: 0},
		{body: `{"code":"WELCOME20","amount":"1250.50"}`, wantCode: "WELCOME20", wantFinal: 1000.4},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			rec := post(h, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Data ValidatePromoResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Data.Code)
			assert.InDelta(t, tt.wantFinal, body.Data.FinalAmount, 0.001)
			assert.NotEmpty(t, body.Data.Description)
		})
	}
}

func TestHandler_Errors(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "unknown code", body: `{"code":"NOPE","amount":100}`, wantStatus: http.StatusNotFound, wantError: msgInvalidCode},
		{name: "missing code", body: `{"amount":100}`, wantStatus: http.StatusBadRequest, wantError: msgMissingFields},
		{name: "missing amount", body: `{"code":"SAVE10"}`, wantStatus: http.StatusBadRequest, wantError: msgMissingFields},
		{name: "negative amount", body: `{"code":"SAVE10","amount":-5}`, wantStatus: http.StatusBadRequest, wantError: msgMissingFields},
		{name: "broken json", body: `{"code":`, wantStatus: http.StatusBadRequest, wantError: msgInvalidRequestBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}
