package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lindseymertz/lily/internal/core/domain"
	"github.com/lindseymertz/lily/internal/core/ports"
)

// DashboardHandler serves the derived summary and chart breakdown views.
// Everything here is a pure read over the filter and SLA store state.
type DashboardHandler struct {
	dashboard    ports.DashboardService
	errorHandler *ErrorHandler
	defaults     DashboardDefaults
	logger       *slog.Logger
}

// DashboardDefaults are the window sizes used when the query string leaves
// them unset.
type DashboardDefaults struct {
	SparklineDays  int
	ComparisonDays int
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboard ports.DashboardService,
	errorHandler *ErrorHandler,
	defaults DashboardDefaults,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboard:    dashboard,
		errorHandler: errorHandler,
		defaults:     defaults,
		logger:       logger.With("handler", "dashboard"),
	}
}

// RegisterRoutes sets up the routing for the dashboard endpoints.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.HandleSummary)
	r.Get("/breakdowns/{dimension}", h.HandleBreakdown)
}

// HandleSummary returns the headline metrics, sparkline series and
// period-over-period comparison for the current filter state.
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	q := ports.SummaryQuery{
		SparklineDays:  queryIntOrDefault(r, "sparklineDays", h.defaults.SparklineDays),
		ComparisonDays: queryIntOrDefault(r, "comparisonDays", h.defaults.ComparisonDays),
	}
	WriteSuccess(w, h.dashboard.Summary(q))
}

// HandleBreakdown returns per-value counts and resolution averages for one
// dimension.
func (h *DashboardHandler) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	dimension := domain.Dimension(chi.URLParam(r, "dimension"))

	breakdown, err := h.dashboard.Breakdown(dimension)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	WriteSuccess(w, breakdown)
}

// queryIntOrDefault reads a positive integer query parameter, falling back
// to def when absent or malformed.
func queryIntOrDefault(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
