package report_auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/session"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgWrongPin           = "Wrong PIN! Contact the system administrator."

	// cookiePath cookie уходит только на маршруты отчета
	cookiePath = "/api/v1/report"
)

type Handler struct {
	sessions SessionManager
	logger   Logger
}

func NewHandler(sessions SessionManager, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/report/auth
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReportAuthRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /report/auth - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.sessions.CheckPin(req.Pin); err != nil {
		if errors.Is(err, session.ErrWrongPin) {
			h.logger.Warn("POST /report/auth - Wrong PIN from %s", r.RemoteAddr)
			handlers.RespondUnauthorized(w, msgWrongPin)
			return
		}
		h.logger.Error("POST /report/auth - Failed to check PIN: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	token, expiresAt, err := h.sessions.Issue()
	if err != nil {
		h.logger.Error("POST /report/auth - Failed to issue session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     cookiePath,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	h.logger.Info("POST /report/auth - Session issued, expires at %s", expiresAt.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, ReportAuthResponse{ExpiresAt: expiresAt.UTC().Format(time.RFC3339)})
}
