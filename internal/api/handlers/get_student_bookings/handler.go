package get_student_bookings

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
)

const (
	msgInvalidStudentID = "некорректный ID ученика"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/{studentId}/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, err := uuid.Parse(mux.Vars(r)["studentId"])
	if err != nil {
		h.logger.Warn("GET /students/{studentId}/bookings - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	// Период по умолчанию: от сегодня на окно вперёд в месяц
	now := time.Now()
	from := domain.DateOnly(now)
	to := from.AddDate(0, 1, 0)

	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /students/{studentId}/bookings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err = time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /students/{studentId}/bookings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.service.GetStudentBookings(r.Context(), studentID, from, to)
	if err != nil {
		h.logger.Error("GET /students/{studentId}/bookings - Failed to get bookings: student=%s, error=%v", studentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
