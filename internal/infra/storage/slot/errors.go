package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации данных слота
	ErrEncode = errors.New("slot.repository: failed to encode slot data")

	// ErrDecode возвращается при ошибке десериализации данных слота
	ErrDecode = errors.New("slot.repository: failed to decode slot data")
)
