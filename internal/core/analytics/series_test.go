package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindseymertz/lily/internal/core/analytics"
	"github.com/lindseymertz/lily/internal/core/domain"
)

func TestRollingSeries(t *testing.T) {
	now := day("2024-03-10")

	t.Run("buckets records by exact day, oldest first", func(t *testing.T) {
		records := []domain.ServiceRequest{
			{RequestID: "SR-1", RequestDate: "2024-03-04"},
			{RequestID: "SR-2", RequestDate: "2024-03-10"},
			{RequestID: "SR-3", RequestDate: "2024-03-10"},
		}

		got := analytics.RollingSeries(records, analytics.MetricTotalRequests(), 7, now)

		assert.Equal(t, []float64{1, 0, 0, 0, 0, 0, 2}, got)
	})

	t.Run("all-zero window becomes the placeholder", func(t *testing.T) {
		records := []domain.ServiceRequest{
			{RequestID: "SR-1", RequestDate: "2023-01-01"},
		}

		got := analytics.RollingSeries(records, analytics.MetricTotalRequests(), 7, now)

		assert.Equal(t, []float64{1, 2, 1, 3, 2, 4, 3}, got)
	})

	t.Run("empty input becomes the placeholder", func(t *testing.T) {
		got := analytics.RollingSeries(nil, analytics.MetricTotalRequests(), 7, now)
		assert.Equal(t, analytics.PlaceholderSeries(), got)
	})

	t.Run("window size controls the point count", func(t *testing.T) {
		records := []domain.ServiceRequest{
			{RequestID: "SR-1", RequestDate: "2024-03-10"},
		}

		got := analytics.RollingSeries(records, analytics.MetricTotalRequests(), 14, now)

		require.Len(t, got, 14)
		assert.Equal(t, float64(1), got[13])
	})

	t.Run("avg resolution reduces per day", func(t *testing.T) {
		records := []domain.ServiceRequest{
			{RequestID: "SR-1", RequestDate: "2024-03-10", TimeToResolution: 30},
			{RequestID: "SR-2", RequestDate: "2024-03-10", TimeToResolution: 50},
		}

		got := analytics.RollingSeries(records, analytics.MetricAvgResolution(), 7, now)

		assert.Equal(t, float64(40), got[6])
	})

	t.Run("breach metric honors thresholds", func(t *testing.T) {
		thresholds := domain.DefaultSLAThresholds()
		records := []domain.ServiceRequest{
			{RequestID: "SR-1", RequestDate: "2024-03-09", TimeToRespond: 20},
			{RequestID: "SR-2", RequestDate: "2024-03-09", TimeToRespond: 2},
		}

		got := analytics.RollingSeries(records, analytics.MetricSLABreaches(thresholds), 7, now)

		assert.Equal(t, float64(1), got[5])
	})
}

func TestPlaceholderSeries(t *testing.T) {
	a := analytics.PlaceholderSeries()
	a[0] = 99

	// Callers get independent copies.
	assert.Equal(t, []float64{1, 2, 1, 3, 2, 4, 3}, analytics.PlaceholderSeries())
}

func TestComparePeriods(t *testing.T) {
	now := day("2024-03-31")

	t.Run("partitions into current and previous windows", func(t *testing.T) {
		records := []domain.ServiceRequest{
			{RequestID: "SR-1", RequestDate: "2024-03-20"}, // current
			{RequestID: "SR-2", RequestDate: "2024-03-01"}, // current boundary
			{RequestID: "SR-3", RequestDate: "2024-02-29"}, // previous
			{RequestID: "SR-4", RequestDate: "2024-01-31"}, // previous boundary
			{RequestID: "SR-5", RequestDate: "2024-01-30"}, // older than both
		}

		cmp := analytics.ComparePeriods(records, 30, now)

		require.Len(t, cmp.Current, 2)
		require.Len(t, cmp.Previous, 2)
		assert.Equal(t, "SR-1", cmp.Current[0].RequestID)
		assert.Equal(t, "SR-2", cmp.Current[1].RequestID)
		assert.Equal(t, "SR-3", cmp.Previous[0].RequestID)
		assert.Equal(t, "SR-4", cmp.Previous[1].RequestID)
	})

	t.Run("previous window includes its start and nothing earlier", func(t *testing.T) {
		records := []domain.ServiceRequest{
			{RequestID: "SR-1", RequestDate: "2024-01-31"}, // exactly 2N days back
			{RequestID: "SR-2", RequestDate: "2024-01-30"}, // one day earlier
		}

		cmp := analytics.ComparePeriods(records, 30, now)

		assert.Empty(t, cmp.Current)
		require.Len(t, cmp.Previous, 1)
		assert.Equal(t, "SR-1", cmp.Previous[0].RequestID)
	})

	t.Run("current start belongs to current, not previous", func(t *testing.T) {
		records := []domain.ServiceRequest{
			{RequestID: "SR-1", RequestDate: "2024-03-01"},
		}

		cmp := analytics.ComparePeriods(records, 30, now)

		assert.Len(t, cmp.Current, 1)
		assert.Empty(t, cmp.Previous)
	})

	t.Run("delta carries the percent change", func(t *testing.T) {
		cmp := analytics.PeriodComparison{
			Current:  make([]domain.ServiceRequest, 3),
			Previous: make([]domain.ServiceRequest, 2),
		}

		delta := cmp.Delta()

		assert.Equal(t, 3, delta.CurrentCount)
		assert.Equal(t, 2, delta.PreviousCount)
		require.NotNil(t, delta.PercentChange)
		assert.InDelta(t, 50.0, *delta.PercentChange, 0.0001)
	})

	t.Run("delta omits percent change on empty previous", func(t *testing.T) {
		cmp := analytics.PeriodComparison{
			Current: make([]domain.ServiceRequest, 3),
		}

		delta := cmp.Delta()

		assert.Nil(t, delta.PercentChange)
	})
}

func TestPercentChange(t *testing.T) {
	pct, ok := analytics.PercentChange(120, 100)
	require.True(t, ok)
	assert.InDelta(t, 20.0, pct, 0.0001)

	pct, ok = analytics.PercentChange(80, 100)
	require.True(t, ok)
	assert.InDelta(t, -20.0, pct, 0.0001)

	_, ok = analytics.PercentChange(5, 0)
	assert.False(t, ok)
}
