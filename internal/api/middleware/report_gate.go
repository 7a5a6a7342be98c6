package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/session"
)

const msgReportLocked = "report is locked, enter the PIN first"

// SessionVerifier проверяет токен сессии отчета
type SessionVerifier interface {
	Verify(token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// ReportGate пропускает к отчету только с действующей сессией (cookie report_session)
func ReportGate(verifier SessionVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				logger.Warn("%s %s - No report session", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgReportLocked)
				return
			}

			if err := verifier.Verify(cookie.Value); err != nil {
				logger.Warn("%s %s - Invalid report session: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgReportLocked)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
