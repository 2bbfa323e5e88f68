package trigger_sweep

import (
	"context"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/settle_sessions"
)

type SettleUseCase interface {
	Execute(ctx context.Context) (*settle_sessions.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
