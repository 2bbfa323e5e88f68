package lock_slot

import "errors"

var (
	// ErrSlotNotFound слот с указанным ключом не существует
	ErrSlotNotFound = errors.New("lock_slot: slot not found")

	// ErrSlotFull все места в слоте заняты подтверждёнными записями и активными блокировками
	ErrSlotFull = errors.New("lock_slot: slot is full")

	// ErrAlreadyBooked ученик уже подтверждён в этом слоте
	ErrAlreadyBooked = errors.New("lock_slot: student already booked in slot")

	// ErrAlreadyLocked ученик уже держит активную блокировку на этот слот
	ErrAlreadyLocked = errors.New("lock_slot: student already holds an active lock")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("lock_slot: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("lock_slot: internal error")
)
