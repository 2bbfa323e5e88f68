package update_template

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates/models"
)

const (
	msgInvalidTemplateID  = "некорректный ID шаблона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные шаблона"
	msgTemplateNotFound   = "шаблон не найден"
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

// Handle PATCH /api/v1/templates/{templateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	templateID, err := uuid.Parse(mux.Vars(r)["templateId"])
	if err != nil {
		h.logger.Warn("PATCH /templates/{templateId} - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	var req models.UpdateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /templates/{templateId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), templateID, &req)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidInput):
			h.logger.Warn("PATCH /templates/{templateId} - Invalid input: template=%s, error=%v", templateID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, templates.ErrTemplateNotFound):
			h.logger.Warn("PATCH /templates/{templateId} - Template not found: template=%s", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, templates.ErrCategoryNotFound):
			h.logger.Warn("PATCH /templates/{templateId} - Category not found: template=%s", templateID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, templates.ErrTemplateOverlap):
			h.logger.Warn("PATCH /templates/{templateId} - Template overlap: template=%s", templateID)
			handlers.RespondError(w, http.StatusConflict, msgTemplateOverlap)

		default:
			h.logger.Error("PATCH /templates/{templateId} - Failed to update template: template=%s, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
