package report_auth

import "time"

type SessionManager interface {
	CheckPin(pin string) error
	Issue() (string, time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
