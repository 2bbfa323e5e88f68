package create_template

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные шаблона"
	msgSeasonNotFound     = "сезон не найден"
	msgCategoryNotFound   = "категория не найдена"
	msgTemplateOverlap    = "шаблон пересекается по времени с существующим"
)

type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/seasons/{seasonId}/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["seasonId"]

	var req models.CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /seasons/{seasonId}/templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SeasonID = seasonID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidInput):
			h.logger.Warn("POST /seasons/{seasonId}/templates - Invalid input: season=%s, error=%v", seasonID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, templates.ErrSeasonNotFound):
			h.logger.Warn("POST /seasons/{seasonId}/templates - Season not found: season=%s", seasonID)
			handlers.RespondNotFound(w, msgSeasonNotFound)

		case errors.Is(err, templates.ErrCategoryNotFound):
			h.logger.Warn("POST /seasons/{seasonId}/templates - Category not found: season=%s", seasonID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, templates.ErrTemplateOverlap):
			h.logger.Warn("POST /seasons/{seasonId}/templates - Template overlap: season=%s, range=%s", seasonID, req.TimeRange)
			handlers.RespondError(w, http.StatusConflict, msgTemplateOverlap)

		default:
			h.logger.Error("POST /seasons/{seasonId}/templates - Failed to create template: season=%s, error=%v",
				seasonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
