package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lindseymertz/lily/internal/adapters/secondary/export"
	"github.com/lindseymertz/lily/internal/core/ports"
)

// ExportHandler streams the current filtered subset as a file download.
// Both formats carry the same 13 columns; only the envelope differs.
type ExportHandler struct {
	dashboard ports.DashboardService
	clock     func() time.Time
	logger    *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(dashboard ports.DashboardService, clock func() time.Time, logger *slog.Logger) *ExportHandler {
	if clock == nil {
		clock = time.Now
	}
	return &ExportHandler{
		dashboard: dashboard,
		clock:     clock,
		logger:    logger.With("handler", "export"),
	}
}

// RegisterRoutes sets up the routing for the export endpoints.
func (h *ExportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/csv", h.HandleCSV)
	r.Get("/workbook", h.HandleWorkbook)
}

// HandleCSV downloads the filtered records as delimited text.
func (h *ExportHandler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	records := h.dashboard.FilteredRequests()
	h.logger.Info("csv export", "rows", len(records))
	WriteAttachment(w,
		export.Filename("service-requests", "csv", h.clock()),
		"text/csv; charset=utf-8",
		export.CSV(records),
	)
}

// HandleWorkbook downloads the filtered records as spreadsheet markup that
// desktop spreadsheet applications open directly.
func (h *ExportHandler) HandleWorkbook(w http.ResponseWriter, r *http.Request) {
	records := h.dashboard.FilteredRequests()
	h.logger.Info("workbook export", "rows", len(records))
	WriteAttachment(w,
		export.Filename("service-requests", "xls", h.clock()),
		"application/vnd.ms-excel",
		export.Workbook(records),
	)
}
