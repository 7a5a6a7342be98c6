package query_report

import "errors"

var (
	// ErrUnknownWeekday возвращается, когда день недели не из списка Sunday..Saturday
	ErrUnknownWeekday = errors.New("query_report: unknown weekday")

	// ErrInvalidRange возвращается, когда from позже to
	ErrInvalidRange = errors.New("query_report: invalid date range")

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = errors.New("query_report: storage unavailable")
)
