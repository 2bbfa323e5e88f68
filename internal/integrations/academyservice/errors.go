package academyservice

import "errors"

var (
	// ErrNotFound возвращается, когда запрошенный ресурс отсутствует в сервисе академии
	ErrNotFound = errors.New("academyservice: resource not found")

	// ErrSeasonNotFound возвращается, когда сезон не найден
	ErrSeasonNotFound = errors.New("season not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("academyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("academyservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис академии недоступен и следует использовать правила по умолчанию
	ErrServiceDegraded = errors.New("academyservice unavailable: graceful degradation applied")
)
