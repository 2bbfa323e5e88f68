package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Slot, error)
	GetByAttendee(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]*domain.Slot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
