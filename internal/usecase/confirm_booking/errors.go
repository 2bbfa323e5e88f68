package confirm_booking

import "errors"

var (
	// ErrStudentNotFound ученик не найден
	ErrStudentNotFound = errors.New("confirm_booking: student not found")

	// ErrMissingSlotData слот не существует и в запросе нет данных для его создания
	ErrMissingSlotData = errors.New("confirm_booking: slot does not exist and no slot data provided")

	// ErrHasDebt у ученика есть задолженность
	ErrHasDebt = errors.New("confirm_booking: student has debt")

	// ErrInsufficientCredits у ученика закончились кредиты
	ErrInsufficientCredits = errors.New("confirm_booking: student has no remaining credits")

	// ErrAlreadyBooked ученик уже подтверждён в этом слоте
	ErrAlreadyBooked = errors.New("confirm_booking: student already booked in slot")

	// ErrLockExpired блокировка ученика истекла до подтверждения
	ErrLockExpired = errors.New("confirm_booking: lock has expired")

	// ErrSlotFull все места в слоте заняты
	ErrSlotFull = errors.New("confirm_booking: slot is full")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("confirm_booking: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("confirm_booking: internal error")
)
