package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	cancelBooking "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/cancel_booking"
)

const (
	msgInvalidSlotKey   = "некорректный ключ слота, ожидается YYYY-MM-DD_<полоса>"
	msgInvalidStudentID = "некорректный ID ученика"
	msgNotBooked        = "ученик не записан в этот слот"
	msgSlotEnded        = "занятие уже прошло, отмена невозможна"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotKey}/cancel/{studentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotKey := vars["slotKey"]

	studentID, err := uuid.Parse(vars["studentId"])
	if err != nil {
		h.logger.Warn("POST /slots/{slotKey}/cancel/{studentId} - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	err = h.useCase.Execute(r.Context(), cancelBooking.Request{SlotKey: slotKey, StudentID: studentID})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /slots/{slotKey}/cancel/{studentId} - Invalid input: slot=%s, error=%v", slotKey, err)
			handlers.RespondBadRequest(w, msgInvalidSlotKey)

		case errors.Is(err, cancelBooking.ErrNotBooked):
			h.logger.Warn("POST /slots/{slotKey}/cancel/{studentId} - Not booked: slot=%s, student=%s", slotKey, studentID)
			handlers.RespondNotFound(w, msgNotBooked)

		case errors.Is(err, cancelBooking.ErrSlotEnded):
			h.logger.Warn("POST /slots/{slotKey}/cancel/{studentId} - Slot ended: slot=%s, student=%s", slotKey, studentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotEnded)

		default:
			h.logger.Error("POST /slots/{slotKey}/cancel/{studentId} - Failed to cancel booking: slot=%s, student=%s, error=%v",
				slotKey, studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
