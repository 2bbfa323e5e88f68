package settle_sessions

import "errors"

var (
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("settle_sessions: internal error")
)
