package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindseymertz/lily/internal/core/analytics"
	"github.com/lindseymertz/lily/internal/core/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleRecords() []domain.ServiceRequest {
	return []domain.ServiceRequest{
		{
			RequestID: "SR-1", AccountName: "Harbor Grill",
			Vertical: domain.VerticalRestaurant, Status: domain.StatusResolved,
			IssueCategory: domain.CategoryHardware, AccountHealth: domain.HealthGood,
			RequestDate: "2024-03-04", TimeToResolution: 40,
		},
		{
			RequestID: "SR-2", AccountName: "Fuelmart North",
			Vertical: domain.VerticalFuel, Status: domain.StatusInProgress,
			IssueCategory: domain.CategorySoftware, AccountHealth: domain.HealthAtRisk,
			RequestDate: "2024-03-06", TimeToResolution: 80,
		},
		{
			RequestID: "SR-3", AccountName: "Harbor Grill",
			Vertical: domain.VerticalRestaurant, Status: domain.StatusInProgress,
			IssueCategory: domain.CategoryBilling, AccountHealth: domain.HealthGood,
			RequestDate: "2024-03-08", TimeToResolution: 20,
		},
		{
			RequestID: "SR-4", AccountName: "Greenfield Grocers",
			Vertical: domain.VerticalGrocery, Status: domain.StatusResolved,
			IssueCategory: domain.CategoryHardware, AccountHealth: domain.HealthCritical,
			RequestDate: "2024-02-01", TimeToResolution: 60,
		},
	}
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	t.Run("no constraints returns everything in order", func(t *testing.T) {
		got := analytics.Filter(records, domain.ChartFilters{}, domain.DateRange{Preset: domain.RangeAll})

		require.Len(t, got, 4)
		assert.Equal(t, "SR-1", got[0].RequestID)
		assert.Equal(t, "SR-4", got[3].RequestID)
	})

	t.Run("chart filters AND together", func(t *testing.T) {
		restaurant := string(domain.VerticalRestaurant)
		inProgress := string(domain.StatusInProgress)
		var f domain.ChartFilters
		f.Set(domain.DimensionVertical, &restaurant)
		f.Set(domain.DimensionStatus, &inProgress)

		got := analytics.Filter(records, f, domain.DateRange{Preset: domain.RangeAll})

		require.Len(t, got, 1)
		assert.Equal(t, "SR-3", got[0].RequestID)
	})

	t.Run("date range excludes out-of-window records", func(t *testing.T) {
		dr := domain.NewDateRange(domain.RangeLast7, day("2024-03-10"))

		got := analytics.Filter(records, domain.ChartFilters{}, dr)

		require.Len(t, got, 3)
		for _, r := range got {
			assert.NotEqual(t, "SR-4", r.RequestID)
		}
	})

	t.Run("unparseable dates drop out under an active range", func(t *testing.T) {
		bad := append(sampleRecords(), domain.ServiceRequest{
			RequestID: "SR-5", RequestDate: "unknown",
			Vertical: domain.VerticalFuel, Status: domain.StatusResolved,
		})
		dr := domain.NewDateRange(domain.RangeLast90, day("2024-03-10"))

		got := analytics.Filter(bad, domain.ChartFilters{}, dr)

		for _, r := range got {
			assert.NotEqual(t, "SR-5", r.RequestID)
		}

		all := analytics.Filter(bad, domain.ChartFilters{}, domain.DateRange{Preset: domain.RangeAll})
		assert.Len(t, all, 5)
	})

	t.Run("narrowing filters never grows the subset", func(t *testing.T) {
		restaurant := string(domain.VerticalRestaurant)
		var f domain.ChartFilters
		f.Set(domain.DimensionVertical, &restaurant)

		loose := analytics.Filter(records, domain.ChartFilters{}, domain.DateRange{Preset: domain.RangeAll})
		tight := analytics.Filter(records, f, domain.DateRange{Preset: domain.RangeAll})

		assert.LessOrEqual(t, len(tight), len(loose))
	})
}

func TestGroupCounts(t *testing.T) {
	t.Run("first occurrence fixes the order", func(t *testing.T) {
		records := []domain.ServiceRequest{
			{Status: domain.StatusResolved},
			{Status: domain.StatusInProgress},
			{Status: domain.StatusResolved},
		}

		got := analytics.GroupCounts(records, domain.DimensionStatus)

		require.Len(t, got, 2)
		assert.Equal(t, domain.GroupCount{Value: "Resolved", Count: 2}, got[0])
		assert.Equal(t, domain.GroupCount{Value: "In Progress", Count: 1}, got[1])
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, analytics.GroupCounts(nil, domain.DimensionVertical))
	})

	t.Run("unknown dimension yields nil", func(t *testing.T) {
		assert.Nil(t, analytics.GroupCounts(sampleRecords(), domain.Dimension("nope")))
	})
}

func TestAverageResolutionBy(t *testing.T) {
	records := []domain.ServiceRequest{
		{Vertical: domain.VerticalRestaurant, TimeToResolution: 40},
		{Vertical: domain.VerticalFuel, TimeToResolution: 81},
		{Vertical: domain.VerticalRestaurant, TimeToResolution: 21},
	}

	got := analytics.AverageResolutionBy(records, domain.DimensionVertical)

	require.Len(t, got, 2)
	// (40+21)/2 = 30.5 rounds to 31.
	assert.Equal(t, domain.GroupAverage{Value: "Restaurant", AvgHours: 31}, got[0])
	assert.Equal(t, domain.GroupAverage{Value: "Fuel", AvgHours: 81}, got[1])
}

func TestMeanResolutionHours(t *testing.T) {
	assert.Equal(t, 0, analytics.MeanResolutionHours(nil))
	assert.Equal(t, 50, analytics.MeanResolutionHours(sampleRecords()))
}
