package get_periods

import (
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
)

type Handler struct {
	catalog PeriodCatalog
	logger  Logger
}

func NewHandler(catalog PeriodCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/periods
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	periods := h.catalog.Periods()
	h.logger.Info("GET /periods - Returning %d periods", len(periods))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(periods))
}
