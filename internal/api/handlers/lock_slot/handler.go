package lock_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	lockSlot "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/lock_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotKey     = "некорректный ключ слота, ожидается YYYY-MM-DD_<полоса>"
	msgSlotNotFound       = "слот не найден"
	msgSlotFull           = "все места в слоте заняты"
	msgAlreadyBooked      = "ученик уже записан в этот слот"
	msgAlreadyLocked      = "ученик уже удерживает место в этом слоте"
)

type Handler struct {
	useCase LockSlotUseCase
	logger  Logger
}

func NewHandler(useCase LockSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotKey}/lock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotKey := mux.Vars(r)["slotKey"]

	var req lockSlot.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{slotKey}/lock - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SlotKey = slotKey

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, lockSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/{slotKey}/lock - Invalid input: slot=%s, error=%v", slotKey, err)
			handlers.RespondBadRequest(w, msgInvalidSlotKey)

		case errors.Is(err, lockSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{slotKey}/lock - Slot not found: slot=%s", slotKey)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, lockSlot.ErrSlotFull):
			h.logger.Warn("POST /slots/{slotKey}/lock - Slot full: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, lockSlot.ErrAlreadyBooked):
			h.logger.Warn("POST /slots/{slotKey}/lock - Already booked: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBooked)

		case errors.Is(err, lockSlot.ErrAlreadyLocked):
			h.logger.Warn("POST /slots/{slotKey}/lock - Already locked: slot=%s, student=%s", slotKey, req.StudentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyLocked)

		default:
			h.logger.Error("POST /slots/{slotKey}/lock - Failed to lock slot: slot=%s, student=%s, error=%v",
				slotKey, req.StudentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
