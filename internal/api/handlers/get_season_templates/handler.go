package get_season_templates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates"
)

const msgInvalidSeasonID = "некорректный ID сезона"

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

// Handle GET /api/v1/seasons/{seasonId}/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["seasonId"]

	result, err := h.service.GetBySeason(r.Context(), seasonID)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidInput):
			h.logger.Warn("GET /seasons/{seasonId}/templates - Invalid season ID: season=%s", seasonID)
			handlers.RespondBadRequest(w, msgInvalidSeasonID)

		default:
			h.logger.Error("GET /seasons/{seasonId}/templates - Failed to get templates: season=%s, error=%v",
				seasonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
