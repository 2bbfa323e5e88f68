package generate_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/integrations/academyservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Upsert(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	DeleteByDateRange(ctx context.Context, from, to time.Time) (int64, error)
}

// TemplateRepository интерфейс репозитория шаблонов расписания
type TemplateRepository interface {
	GetBySeason(ctx context.Context, filter domain.TemplatesFilter) ([]*domain.ScheduleTemplate, error)
}

// StudentRepository интерфейс репозитория учеников
type StudentRepository interface {
	GetActive(ctx context.Context) ([]*domain.Student, error)
}

// AcademyClient интерфейс клиента сервиса академии
type AcademyClient interface {
	GetSeason(ctx context.Context, seasonID string) (*academyservice.Season, error)
	GetAgeRulesWithGracefulDegradation(ctx context.Context) ([]academyservice.AgeRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// slotSeed заготовка слота перед записью в хранилище
type slotSeed struct {
	key        domain.SlotKey
	categoryID *string
	templateID *uuid.UUID
	capacity   int
	isBreak    bool
	attendees  []uuid.UUID
}
