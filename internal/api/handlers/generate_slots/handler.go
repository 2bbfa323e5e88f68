package generate_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	generateSlots "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры генерации"
	msgSeasonNotFound     = "сезон не найден"
	msgNoTemplates        = "для сезона не настроено ни одного шаблона расписания"
	msgForceRequired      = "генерация перезапишет существующие слоты, требуется флаг force"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/seasons/{seasonId}/generate-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["seasonId"]

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /seasons/{seasonId}/generate-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(seasonID)
	if err != nil {
		h.logger.Warn("POST /seasons/{seasonId}/generate-slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrForceRequired):
			h.logger.Warn("POST /seasons/{seasonId}/generate-slots - Force flag missing: season=%s", seasonID)
			handlers.RespondError(w, http.StatusConflict, msgForceRequired)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /seasons/{seasonId}/generate-slots - Invalid input: season=%s, error=%v", seasonID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, generateSlots.ErrSeasonNotFound):
			h.logger.Warn("POST /seasons/{seasonId}/generate-slots - Season not found: season=%s", seasonID)
			handlers.RespondNotFound(w, msgSeasonNotFound)

		case errors.Is(err, generateSlots.ErrNoTemplates):
			h.logger.Warn("POST /seasons/{seasonId}/generate-slots - No templates: season=%s", seasonID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoTemplates)

		default:
			h.logger.Error("POST /seasons/{seasonId}/generate-slots - Failed to generate slots: season=%s, error=%v",
				seasonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
