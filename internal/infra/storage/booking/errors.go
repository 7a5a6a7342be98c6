package booking

import "errors"

var (
	// ErrDuplicateID возвращается при повторной вставке бронирования с тем же ID
	ErrDuplicateID = errors.New("booking.repository: duplicate booking id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrSchema возвращается при ошибке создания схемы
	ErrSchema = errors.New("booking.repository: failed to ensure schema")
)
