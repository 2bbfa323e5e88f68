package generate_slots

import "errors"

var (
	// ErrSeasonNotFound сезон не найден в сервисе академии
	ErrSeasonNotFound = errors.New("generate_slots: season not found")

	// ErrNoTemplates для сезона не настроено ни одного шаблона
	ErrNoTemplates = errors.New("generate_slots: no templates configured for season")

	// ErrForceRequired генерация перезаписывает слоты и требует явного подтверждения
	ErrForceRequired = errors.New("generate_slots: generation overwrites existing slots, force flag is required")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("generate_slots: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("generate_slots: internal error")
)
