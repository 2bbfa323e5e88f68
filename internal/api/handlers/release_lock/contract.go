package release_lock

import (
	"context"

	releaseLock "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/release_lock"
)

type ReleaseLockUseCase interface {
	Execute(ctx context.Context, req releaseLock.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
