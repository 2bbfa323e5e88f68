package settle_sessions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetPendingSettlement(ctx context.Context, from, to time.Time) ([]*domain.Slot, error)
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
	UpdateOccupancy(ctx context.Context, s *domain.Slot) error
}

// StudentRepository интерфейс репозитория учеников
type StudentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	AdjustCredits(ctx context.Context, id uuid.UUID, delta int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс метрик списания
type Metrics interface {
	ObserveSweepSlot(charged int, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopMetrics заглушка метрик для окружений с выключенным Prometheus
type NopMetrics struct{}

// ObserveSweepSlot ничего не делает
func (NopMetrics) ObserveSweepSlot(int, error) {}
