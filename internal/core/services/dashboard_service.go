package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lindseymertz/lily/internal/core/analytics"
	"github.com/lindseymertz/lily/internal/core/domain"
	apperrors "github.com/lindseymertz/lily/internal/core/errors"
	"github.com/lindseymertz/lily/internal/core/ports"
)

var breakdownDimensions = map[domain.Dimension]bool{
	domain.DimensionVertical:      true,
	domain.DimensionStatus:        true,
	domain.DimensionIssueCategory: true,
	domain.DimensionAccountHealth: true,
	domain.DimensionUrgency:       true,
	domain.DimensionPriority:      true,
}

// DashboardService derives every dashboard view from the record collection
// and the two stores. Recomputation is pull-based: each read re-derives
// from the current store state, with the filtered subset cached against the
// filter store's version counter so repeated reads between mutations reuse
// one pass.
type DashboardService struct {
	mu      sync.Mutex
	records []domain.ServiceRequest
	filters ports.FilterStore
	sla     ports.SLAStore
	clock   func() time.Time
	logger  *slog.Logger

	cachedVersion  uint64
	cachedFiltered []domain.ServiceRequest
	cacheValid     bool
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService wires the facade. A nil clock means time.Now; tests
// inject a fixed clock to freeze "today".
func NewDashboardService(
	records []domain.ServiceRequest,
	filters ports.FilterStore,
	sla ports.SLAStore,
	clock func() time.Time,
	logger *slog.Logger,
) *DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardService{
		records: records,
		filters: filters,
		sla:     sla,
		clock:   clock,
		logger:  logger.With("service", "dashboard"),
	}
}

// filtered returns the chart- and date-filtered subset, recomputing only
// when the filter store has changed since the cached pass.
func (s *DashboardService) filtered() []domain.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.filters.Version()
	if s.cacheValid && version == s.cachedVersion {
		return s.cachedFiltered
	}

	filters, dateRange := s.filters.Snapshot()
	s.cachedFiltered = analytics.Filter(s.records, filters, dateRange)
	s.cachedVersion = version
	s.cacheValid = true
	return s.cachedFiltered
}

// Summary computes the card-row aggregates, the per-metric sparklines and
// the period-over-period delta for the filtered collection.
func (s *DashboardService) Summary(q ports.SummaryQuery) domain.Summary {
	recs := s.filtered()
	thresholds := s.sla.Thresholds()
	now := s.clock()

	sparklineDays := q.SparklineDays
	if sparklineDays <= 0 {
		sparklineDays = analytics.DefaultSparklineDays
	}
	comparisonDays := q.ComparisonDays
	if comparisonDays <= 0 {
		comparisonDays = analytics.DefaultComparisonDays
	}

	open := 0
	atRisk := 0
	for _, r := range recs {
		if r.Status == domain.StatusInProgress {
			open++
		}
		if r.AccountHealth == domain.HealthAtRisk {
			atRisk++
		}
	}

	metrics := []analytics.Metric{
		analytics.MetricTotalRequests(),
		analytics.MetricStatusCount("openRequests", domain.StatusInProgress),
		analytics.MetricAvgResolution(),
		analytics.MetricHealthCount("atRiskAccounts", domain.HealthAtRisk),
		analytics.MetricSLABreaches(thresholds),
	}
	sparklines := make(map[string][]float64, len(metrics))
	for _, m := range metrics {
		sparklines[m.Name] = analytics.RollingSeries(recs, m, sparklineDays, now)
	}

	return domain.Summary{
		TotalRequests:      len(recs),
		OpenRequests:       open,
		AvgResolutionHours: analytics.MeanResolutionHours(recs),
		SLABreaches:        s.sla.BreachCount(recs),
		AtRiskAccounts:     atRisk,
		Sparklines:         sparklines,
		Comparison:         analytics.ComparePeriods(recs, comparisonDays, now).Delta(),
	}
}

// Breakdown partitions the filtered collection by one dimension, reporting
// counts and average resolution durations in first-occurrence order.
func (s *DashboardService) Breakdown(dimension domain.Dimension) (domain.Breakdown, error) {
	if !breakdownDimensions[dimension] {
		return domain.Breakdown{}, apperrors.ErrInvalidDimension
	}
	recs := s.filtered()
	return domain.Breakdown{
		Dimension: dimension,
		Counts:    analytics.GroupCounts(recs, dimension),
		Averages:  analytics.AverageResolutionBy(recs, dimension),
	}, nil
}

// Table derives the searched, sorted, paginated table view on top of the
// filtered collection.
func (s *DashboardService) Table(q analytics.TableQuery) analytics.TablePage {
	return analytics.TableView(s.filtered(), q)
}

// FilteredRequests returns a copy of the filtered subset in collection
// order, as handed to the export encoders.
func (s *DashboardService) FilteredRequests() []domain.ServiceRequest {
	recs := s.filtered()
	out := make([]domain.ServiceRequest, len(recs))
	copy(out, recs)
	return out
}
