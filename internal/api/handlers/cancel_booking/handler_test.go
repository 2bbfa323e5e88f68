package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	cancelBooking "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/cancel_booking"
)

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, _ cancelBooking.Request) error {
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc CancelBookingUseCase) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/slots/{slotKey}/cancel/{studentId}", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/2026-09-14_0600/cancel/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"invalid input", cancelBooking.ErrInvalidInput, http.StatusBadRequest},
		{"not booked", cancelBooking.ErrNotBooked, http.StatusNotFound},
		{"slot ended", cancelBooking.ErrSlotEnded, http.StatusConflict},
		{"internal", cancelBooking.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tc.err})
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
