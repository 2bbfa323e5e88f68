package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	confirmBooking "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidSlotKey       = "некорректный ключ слота, ожидается YYYY-MM-DD_<полоса>"
	msgStudentNotFound      = "ученик не найден"
	msgMissingSlotData      = "слот не существует, для записи нужны данные слота"
	msgHasDebt              = "у ученика есть задолженность"
	msgInsufficientCredits  = "у ученика закончились занятия по абонементу"
	msgAlreadyBooked        = "ученик уже записан в этот слот"
	msgLockExpired          = "время удержания места истекло"
	msgSlotFull             = "все места в слоте заняты"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotKey}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotKey := mux.Vars(r)["slotKey"]

	var req confirmBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{slotKey}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SlotKey = slotKey

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /slots/{slotKey}/confirm - Invalid input: slot=%s, error=%v", slotKey, err)
			handlers.RespondBadRequest(w, msgInvalidSlotKey)

		case errors.Is(err, confirmBooking.ErrStudentNotFound):
			h.logger.Warn("POST /slots/{slotKey}/confirm - Student not found: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, confirmBooking.ErrMissingSlotData):
			h.logger.Warn("POST /slots/{slotKey}/confirm - Missing slot data: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMissingSlotData)

		case errors.Is(err, confirmBooking.ErrHasDebt):
			h.logger.Warn("POST /slots/{slotKey}/confirm - Student has debt: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondForbidden(w, msgHasDebt)

		case errors.Is(err, confirmBooking.ErrInsufficientCredits):
			h.logger.Warn("POST /slots/{slotKey}/confirm - Insufficient credits: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientCredits)

		case errors.Is(err, confirmBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /slots/{slotKey}/confirm - Already booked: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBooked)

		case errors.Is(err, confirmBooking.ErrLockExpired):
			h.logger.Warn("POST /slots/{slotKey}/confirm - Lock expired: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondError(w, http.StatusGone, msgLockExpired)

		case errors.Is(err, confirmBooking.ErrSlotFull):
			h.logger.Warn("POST /slots/{slotKey}/confirm - Slot full: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		default:
			h.logger.Error("POST /slots/{slotKey}/confirm - Failed to confirm booking: slot=%s, student=%s, error=%v",
				slotKey, req.StudentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
