package export_report

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	queryReportHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/query_report"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/export"
)

type Handler struct {
	useCase queryReportHandler.QueryReportUseCase
	writer  WorkbookWriter
	logger  Logger
}

func NewHandler(useCase queryReportHandler.QueryReportUseCase, writer WorkbookWriter, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		writer:  writer,
		logger:  logger,
	}
}

// Handle GET /api/v1/report/export
// Те же параметры, что у /report; ответ - xlsx файл
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, ok := queryReportHandler.Query(w, r, h.useCase, h.logger)
	if !ok {
		return
	}

	// Пишем в буфер, чтобы при ошибке еще можно было ответить 500
	var buf bytes.Buffer
	if err := h.writer.Write(&buf, result.Bookings); err != nil {
		h.logger.Error("GET /report/export - Failed to build workbook: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName(r)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /report/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /report/export - Exported %d bookings", len(result.Bookings))
}

// fileName bookings.xlsx или bookings-<date>.xlsx для отчета за день
func fileName(r *http.Request) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return "bookings-" + date + ".xlsx"
	}
	return "bookings.xlsx"
}
