package cancel_booking

import "errors"

var (
	// ErrNotBooked ученик не записан в этот слот
	ErrNotBooked = errors.New("cancel_booking: student is not booked in slot")

	// ErrSlotEnded занятие уже прошло, отмена невозможна
	ErrSlotEnded = errors.New("cancel_booking: slot has already ended")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("cancel_booking: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("cancel_booking: internal error")
)
