package release_lock

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	releaseLock "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/release_lock"
)

const (
	msgInvalidSlotKey   = "некорректный ключ слота, ожидается YYYY-MM-DD_<полоса>"
	msgInvalidStudentID = "некорректный ID ученика"
	msgSlotNotFound     = "слот не найден"
	msgLockNotFound     = "блокировка не найдена"
)

type Handler struct {
	useCase ReleaseLockUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseLockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/slots/{slotKey}/lock/{studentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotKey := vars["slotKey"]

	studentID, err := uuid.Parse(vars["studentId"])
	if err != nil {
		h.logger.Warn("DELETE /slots/{slotKey}/lock/{studentId} - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	err = h.useCase.Execute(r.Context(), releaseLock.Request{SlotKey: slotKey, StudentID: studentID})
	if err != nil {
		switch {
		case errors.Is(err, releaseLock.ErrInvalidInput):
			h.logger.Warn("DELETE /slots/{slotKey}/lock/{studentId} - Invalid input: slot=%s, error=%v", slotKey, err)
			handlers.RespondBadRequest(w, msgInvalidSlotKey)

		case errors.Is(err, releaseLock.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{slotKey}/lock/{studentId} - Slot not found: slot=%s", slotKey)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, releaseLock.ErrLockNotFound):
			h.logger.Warn("DELETE /slots/{slotKey}/lock/{studentId} - Lock not found: slot=%s, student=%s", slotKey, studentID)
			handlers.RespondNotFound(w, msgLockNotFound)

		default:
			h.logger.Error("DELETE /slots/{slotKey}/lock/{studentId} - Failed to release lock: slot=%s, student=%s, error=%v",
				slotKey, studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
