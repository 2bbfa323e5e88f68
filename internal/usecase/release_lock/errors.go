package release_lock

import "errors"

var (
	// ErrSlotNotFound слот с указанным ключом не существует
	ErrSlotNotFound = errors.New("release_lock: slot not found")

	// ErrLockNotFound ученик не держит блокировку на этот слот
	ErrLockNotFound = errors.New("release_lock: lock not found")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("release_lock: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("release_lock: internal error")
)
