package analytics

import (
	"time"

	"github.com/lindseymertz/lily/internal/core/domain"
)

// DefaultSparklineDays is the rolling-window size used by the summary cards.
const DefaultSparklineDays = 7

// placeholderSeries replaces an all-zero window so a rendered sparkline is
// never visually flat. The exact sequence is part of the contract.
var placeholderSeries = []float64{1, 2, 1, 3, 2, 4, 3}

// PlaceholderSeries returns a copy of the fixed fallback sequence.
func PlaceholderSeries() []float64 {
	out := make([]float64, len(placeholderSeries))
	copy(out, placeholderSeries)
	return out
}

// Metric reduces the records of a single calendar day to one sparkline
// value.
type Metric struct {
	Name   string
	Reduce func(day []domain.ServiceRequest) float64
}

// MetricTotalRequests counts the day's records.
func MetricTotalRequests() Metric {
	return Metric{
		Name: "totalRequests",
		Reduce: func(day []domain.ServiceRequest) float64 {
			return float64(len(day))
		},
	}
}

// MetricStatusCount counts the day's records with the given status.
func MetricStatusCount(name string, status domain.RequestStatus) Metric {
	return Metric{
		Name: name,
		Reduce: func(day []domain.ServiceRequest) float64 {
			n := 0
			for _, r := range day {
				if r.Status == status {
					n++
				}
			}
			return float64(n)
		},
	}
}

// MetricAvgResolution is the day's mean time-to-resolution, zero when the
// day has no records.
func MetricAvgResolution() Metric {
	return Metric{
		Name: "avgResolutionHours",
		Reduce: func(day []domain.ServiceRequest) float64 {
			if len(day) == 0 {
				return 0
			}
			var sum float64
			for _, r := range day {
				sum += r.TimeToResolution
			}
			return sum / float64(len(day))
		},
	}
}

// MetricHealthCount counts the day's records with the given account health.
func MetricHealthCount(name string, health domain.AccountHealth) Metric {
	return Metric{
		Name: name,
		Reduce: func(day []domain.ServiceRequest) float64 {
			n := 0
			for _, r := range day {
				if r.AccountHealth == health {
					n++
				}
			}
			return float64(n)
		},
	}
}

// MetricSLABreaches counts the day's records breaching either threshold.
func MetricSLABreaches(t domain.SLAThresholds) Metric {
	return Metric{
		Name: "slaBreaches",
		Reduce: func(day []domain.ServiceRequest) float64 {
			n := 0
			for _, r := range day {
				if t.Breaches(r) {
					n++
				}
			}
			return float64(n)
		},
	}
}

// RollingSeries produces one data point per calendar day for a window of
// the given size ending today. Each point is the metric reduced over the
// records whose request date equals that exact day. A window that computes
// to zero everywhere is replaced by the fixed placeholder sequence.
func RollingSeries(records []domain.ServiceRequest, m Metric, days int, now time.Time) []float64 {
	if days <= 0 {
		days = DefaultSparklineDays
	}
	today := domain.CivilDate(now)
	series := make([]float64, days)
	allZero := true
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i-(days-1))
		var bucket []domain.ServiceRequest
		for _, r := range records {
			d, ok := r.RequestedOn()
			if ok && d.Equal(day) {
				bucket = append(bucket, r)
			}
		}
		v := m.Reduce(bucket)
		series[i] = v
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		return PlaceholderSeries()
	}
	return series
}
