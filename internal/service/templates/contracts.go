package templates

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/integrations/academyservice"
)

// TemplateRepository интерфейс репозитория шаблонов расписания
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleTemplate, error)
	GetBySeason(ctx context.Context, filter domain.TemplatesFilter) ([]*domain.ScheduleTemplate, error)
	Update(ctx context.Context, t *domain.ScheduleTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AcademyServiceClient интерфейс клиента конфигурационного сервиса академии
type AcademyServiceClient interface {
	GetSeason(ctx context.Context, seasonID string) (*academyservice.Season, error)
	GetCategories(ctx context.Context) ([]academyservice.Category, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
