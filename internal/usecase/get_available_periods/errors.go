package get_available_periods

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("usecase: invalid input data")

	// ErrStorageUnavailable хранилище не ответило
	ErrStorageUnavailable = errors.New("usecase: booking storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
