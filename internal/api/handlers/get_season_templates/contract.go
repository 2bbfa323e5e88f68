package get_season_templates

import (
	"context"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates/models"
)

type TemplateService interface {
	GetBySeason(ctx context.Context, seasonID string) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
