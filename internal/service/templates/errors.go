package templates

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон не найден
	ErrTemplateNotFound = errors.New("template not found")

	// ErrSeasonNotFound возвращается, когда сезон не найден
	ErrSeasonNotFound = errors.New("season not found")

	// ErrCategoryNotFound возвращается, когда категория не найдена
	ErrCategoryNotFound = errors.New("category not found")

	// ErrTemplateOverlap возвращается, когда временной диапазон шаблона
	// пересекается с другим не-break шаблоном того же типа дня в сезоне
	ErrTemplateOverlap = errors.New("template time range overlaps an existing template")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("templates service: internal error")
)
