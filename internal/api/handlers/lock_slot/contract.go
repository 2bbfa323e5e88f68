package lock_slot

import (
	"context"

	lockSlot "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/lock_slot"
)

type LockSlotUseCase interface {
	Execute(ctx context.Context, req lockSlot.Request) (*lockSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
