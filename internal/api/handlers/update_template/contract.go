package update_template

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates/models"
)

type TemplateService interface {
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
