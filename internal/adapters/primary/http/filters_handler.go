package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lindseymertz/lily/internal/adapters/primary/validation"
	"github.com/lindseymertz/lily/internal/core/domain"
	apperrors "github.com/lindseymertz/lily/internal/core/errors"
	"github.com/lindseymertz/lily/internal/core/ports"
)

const maxPresetNameLength = 100

// FiltersHandler exposes the shared filter state: chart filters, the date
// range and the saved presets. Chart clicks in the frontend land on
// HandleSetChartFilter; every other view re-derives from the store.
type FiltersHandler struct {
	filters      ports.FilterStore
	errorHandler *ErrorHandler
	clock        func() time.Time
	logger       *slog.Logger
}

// NewFiltersHandler creates a new filters handler. The clock fixes "now"
// for date-range preset derivation; pass time.Now outside tests.
func NewFiltersHandler(
	filters ports.FilterStore,
	errorHandler *ErrorHandler,
	clock func() time.Time,
	logger *slog.Logger,
) *FiltersHandler {
	if clock == nil {
		clock = time.Now
	}
	return &FiltersHandler{
		filters:      filters,
		errorHandler: errorHandler,
		clock:        clock,
		logger:       logger.With("handler", "filters"),
	}
}

// RegisterRoutes sets up the routing for the filter state endpoints.
func (h *FiltersHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetState)
	r.Put("/chart", h.HandleSetChartFilter)
	r.Delete("/chart", h.HandleClearChartFilters)
	r.Put("/range", h.HandleSetDateRange)
}

// RegisterPresetRoutes sets up the routing for the preset collection.
func (h *FiltersHandler) RegisterPresetRoutes(r chi.Router) {
	r.Get("/", h.HandleListPresets)
	r.Post("/", h.HandleSavePreset)
	r.Post("/{presetID}/apply", h.HandleApplyPreset)
	r.Delete("/{presetID}", h.HandleDeletePreset)
}

// --- Request/Response DTOs ---

// FilterStateResponse is the full shared filter state.
type FilterStateResponse struct {
	Filters          domain.ChartFilters `json:"filters"`
	DateRange        domain.DateRange    `json:"dateRange"`
	HasActiveFilters bool                `json:"hasActiveFilters"`
}

// SetChartFilterRequest selects (or clears, with a null value) one chart
// dimension.
type SetChartFilterRequest struct {
	Dimension string  `json:"dimension"`
	Value     *string `json:"value"`
}

// Validate validates the set chart filter request
func (r *SetChartFilterRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("dimension", r.Dimension).
		OneOf("dimension", r.Dimension, chartDimensionNames())

	if r.Value != nil {
		v.OneOf("value", *r.Value, dimensionValues(domain.Dimension(r.Dimension)))
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SetDateRangeRequest replaces the date range. Start and end are only read
// for the custom preset.
type SetDateRangeRequest struct {
	Preset string `json:"preset"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// Validate validates the set date range request
func (r *SetDateRangeRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("preset", r.Preset).
		OneOf("preset", r.Preset, []string{
			string(domain.RangeLast7), string(domain.RangeLast30),
			string(domain.RangeLast90), string(domain.RangeYTD),
			string(domain.RangeCustom), string(domain.RangeAll),
		})

	v.Date("start", r.Start, domain.DateLayout)
	v.Date("end", r.End, domain.DateLayout)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SavePresetRequest names the snapshot being saved.
type SavePresetRequest struct {
	Name string `json:"name"`
}

// Validate validates the save preset request
func (r *SavePresetRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("name", r.Name).
		MaxLength("name", r.Name, maxPresetNameLength)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// --- Handlers ---

// HandleGetState returns the current chart filters and date range.
func (h *FiltersHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	filters, dateRange := h.filters.Snapshot()
	WriteSuccess(w, FilterStateResponse{
		Filters:          filters,
		DateRange:        dateRange,
		HasActiveFilters: filters.HasActive(),
	})
}

// HandleSetChartFilter sets exactly one chart dimension.
func (h *FiltersHandler) HandleSetChartFilter(w http.ResponseWriter, r *http.Request) {
	var req SetChartFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.filters.SetChartFilter(domain.Dimension(req.Dimension), req.Value); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.HandleGetState(w, r)
}

// HandleClearChartFilters resets all four chart dimensions.
func (h *FiltersHandler) HandleClearChartFilters(w http.ResponseWriter, r *http.Request) {
	h.filters.ClearChartFilters()
	h.HandleGetState(w, r)
}

// HandleSetDateRange replaces the date range. Named presets derive their
// bounds from the moment of this call and stay frozen afterwards.
func (h *FiltersHandler) HandleSetDateRange(w http.ResponseWriter, r *http.Request) {
	var req SetDateRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	preset := domain.RangePreset(req.Preset)
	var dr domain.DateRange
	if preset == domain.RangeCustom {
		var start, end *time.Time
		if req.Start != "" {
			t, _ := time.Parse(domain.DateLayout, req.Start)
			start = &t
		}
		if req.End != "" {
			t, _ := time.Parse(domain.DateLayout, req.End)
			end = &t
		}
		dr = domain.NewCustomDateRange(start, end)
	} else {
		dr = domain.NewDateRange(preset, h.clock())
	}

	h.filters.SetDateRange(dr)
	h.HandleGetState(w, r)
}

// HandleListPresets returns the saved presets in insertion order.
func (h *FiltersHandler) HandleListPresets(w http.ResponseWriter, r *http.Request) {
	WriteList(w, h.filters.Presets())
}

// HandleSavePreset captures the current selections under a new preset.
func (h *FiltersHandler) HandleSavePreset(w http.ResponseWriter, r *http.Request) {
	var req SavePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	preset, err := h.filters.SavePreset(r.Context(), req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	WriteCreated(w, preset)
}

// HandleApplyPreset atomically restores a preset's selections. An unknown
// id is a silent no-op, not an error.
func (h *FiltersHandler) HandleApplyPreset(w http.ResponseWriter, r *http.Request) {
	h.filters.LoadPreset(chi.URLParam(r, "presetID"))
	h.HandleGetState(w, r)
}

// HandleDeletePreset removes a preset. An unknown id is a silent no-op.
func (h *FiltersHandler) HandleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := h.filters.DeletePreset(r.Context(), chi.URLParam(r, "presetID")); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	WriteNoContent(w)
}

// --- enum helpers ---

func chartDimensionNames() []string {
	names := make([]string, len(domain.ChartDimensions))
	for i, d := range domain.ChartDimensions {
		names[i] = string(d)
	}
	return names
}

func dimensionValues(d domain.Dimension) []string {
	switch d {
	case domain.DimensionVertical:
		return enumStrings(domain.Verticals)
	case domain.DimensionStatus:
		return enumStrings(domain.Statuses)
	case domain.DimensionIssueCategory:
		return enumStrings(domain.IssueCategories)
	case domain.DimensionAccountHealth:
		return enumStrings(domain.AccountHealths)
	case domain.DimensionUrgency, domain.DimensionPriority:
		return enumStrings(domain.Severities)
	}
	return nil
}

func enumStrings[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
