package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospital-management-server/internal/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestRespondBookingError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", booking.ValidationError("invalid date"), http.StatusBadRequest},
		{"slot unavailable", booking.ErrSlotUnavailable, http.StatusConflict},
		{"slot taken by race", booking.ErrSlotTaken, http.StatusConflict},
		{"not found", booking.ErrNotFound, http.StatusNotFound},
		{"not owner", booking.ErrNotOwner, http.StatusNotFound},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondBookingError(c, logger, tc.err)
			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRespondBookingErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondBookingError(c, zap.NewNop(), errors.New(`duplicate key value violates unique constraint "idx_appointments_active_slot"`))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := w.Body.String(); len(body) > 0 && (strings.Contains(body, "duplicate key") || strings.Contains(body, "constraint")) {
		t.Fatalf("storage details leaked to the client: %s", body)
	}
}
