package ports

import (
	"context"

	"github.com/lindseymertz/lily/internal/core/analytics"
	"github.com/lindseymertz/lily/internal/core/domain"
)

// FilterStore holds the shared chart-filter and date-range selections plus
// the saved preset collection. Preset mutations persist immediately; filter
// and range mutations are in-memory only.
type FilterStore interface {
	// SetChartFilter sets exactly one chart dimension to value (nil clears
	// that dimension) and leaves the others untouched.
	SetChartFilter(dimension domain.Dimension, value *string) error
	// ClearChartFilters resets all four chart dimensions to nil.
	ClearChartFilters()
	// HasActiveChartFilters reports whether any dimension is constrained.
	HasActiveChartFilters() bool
	// SetDateRange replaces the entire date range atomically.
	SetDateRange(dr domain.DateRange)
	// Snapshot returns the current chart filters and date range.
	Snapshot() (domain.ChartFilters, domain.DateRange)

	// SavePreset captures the current selections under a fresh id. It fails
	// with ErrNoActiveFilters when nothing is active to save.
	SavePreset(ctx context.Context, name string) (domain.FilterPreset, error)
	// LoadPreset atomically restores a preset's filters and date range.
	// A missing id is a silent no-op.
	LoadPreset(id string)
	// DeletePreset removes a preset; a missing id is a silent no-op.
	DeletePreset(ctx context.Context, id string) error
	// Presets returns the saved presets in insertion order.
	Presets() []domain.FilterPreset

	// Version increases monotonically with every mutation; derived views
	// key their caches on it.
	Version() uint64
}

// SLAStore holds the configured breach thresholds and exposes the breach
// classification predicates.
type SLAStore interface {
	Thresholds() domain.SLAThresholds
	// SetThresholds replaces both values and persists them. Non-positive
	// inputs coalesce to the current (last-known-good) values.
	SetThresholds(ctx context.Context, t domain.SLAThresholds) error
	IsBreachingResponse(r domain.ServiceRequest) bool
	IsBreachingResolution(r domain.ServiceRequest) bool
	IsBreachingSLA(r domain.ServiceRequest) bool
	BreachCount(records []domain.ServiceRequest) int
	Version() uint64
}

// SummaryQuery parameterizes the dashboard summary computation.
type SummaryQuery struct {
	// SparklineDays is the rolling-series window; defaults to 7.
	SparklineDays int
	// ComparisonDays is the period-over-period window; defaults to 30.
	ComparisonDays int
}

// DashboardService derives every dashboard view from the shared store state.
// Recomputation is pull-based and deterministic: equal store state yields
// equal outputs.
type DashboardService interface {
	Summary(q SummaryQuery) domain.Summary
	Breakdown(dimension domain.Dimension) (domain.Breakdown, error)
	Table(q analytics.TableQuery) analytics.TablePage
	// FilteredRequests returns the chart- and date-filtered subset in
	// collection order, as fed to the export encoders.
	FilteredRequests() []domain.ServiceRequest
}
