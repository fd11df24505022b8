package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lindseymertz/lily/internal/core/domain"
	apperrors "github.com/lindseymertz/lily/internal/core/errors"
	"github.com/lindseymertz/lily/internal/core/mocks"
	"github.com/lindseymertz/lily/internal/core/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newFilterService(t *testing.T) (*services.FilterService, *mocks.InMemorySettings) {
	t.Helper()
	settings := mocks.NewInMemorySettings()
	return services.NewFilterService(context.Background(), settings, testLogger()), settings
}

func TestFilterService_ChartFilters(t *testing.T) {
	restaurant := string(domain.VerticalRestaurant)
	resolved := string(domain.StatusResolved)

	t.Run("set and clear", func(t *testing.T) {
		svc, _ := newFilterService(t)

		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))
		require.NoError(t, svc.SetChartFilter(domain.DimensionStatus, &resolved))
		assert.True(t, svc.HasActiveChartFilters())

		filters, _ := svc.Snapshot()
		assert.Equal(t, &restaurant, filters.Vertical)
		assert.Equal(t, &resolved, filters.Status)

		svc.ClearChartFilters()
		assert.False(t, svc.HasActiveChartFilters())
	})

	t.Run("unknown dimension is rejected", func(t *testing.T) {
		svc, _ := newFilterService(t)

		err := svc.SetChartFilter(domain.Dimension("bogus"), &restaurant)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDimension)
	})

	t.Run("every mutation bumps the version", func(t *testing.T) {
		svc, _ := newFilterService(t)
		v0 := svc.Version()

		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))
		v1 := svc.Version()
		assert.Greater(t, v1, v0)

		svc.SetDateRange(domain.NewDateRange(domain.RangeLast7, day("2024-03-10")))
		assert.Greater(t, svc.Version(), v1)
	})
}

func TestFilterService_Presets(t *testing.T) {
	ctx := context.Background()
	restaurant := string(domain.VerticalRestaurant)

	t.Run("save requires a name", func(t *testing.T) {
		svc, _ := newFilterService(t)
		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))

		_, err := svc.SavePreset(ctx, "")
		assert.ErrorIs(t, err, apperrors.ErrNameRequired)
	})

	t.Run("save requires something active", func(t *testing.T) {
		svc, _ := newFilterService(t)

		_, err := svc.SavePreset(ctx, "empty")
		assert.ErrorIs(t, err, apperrors.ErrNoActiveFilters)
	})

	t.Run("a non-all date range alone is saveable", func(t *testing.T) {
		svc, _ := newFilterService(t)
		svc.SetDateRange(domain.NewDateRange(domain.RangeLast30, day("2024-03-10")))

		_, err := svc.SavePreset(ctx, "recent")
		assert.NoError(t, err)
	})

	t.Run("apply restores the exact snapshot", func(t *testing.T) {
		svc, _ := newFilterService(t)
		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))
		svc.SetDateRange(domain.NewDateRange(domain.RangeLast7, day("2024-03-10")))

		saved, err := svc.SavePreset(ctx, "restaurants this week")
		require.NoError(t, err)
		require.NotEmpty(t, saved.ID)

		// Drift away from the saved state.
		svc.ClearChartFilters()
		svc.SetDateRange(domain.DateRange{Preset: domain.RangeAll})

		svc.LoadPreset(saved.ID)

		filters, dateRange := svc.Snapshot()
		assert.Equal(t, saved.Filters, filters)
		assert.Equal(t, saved.DateRange, dateRange)
	})

	t.Run("apply with unknown id leaves state untouched", func(t *testing.T) {
		svc, _ := newFilterService(t)
		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))
		before, _ := svc.Snapshot()

		svc.LoadPreset("does-not-exist")

		after, _ := svc.Snapshot()
		assert.Equal(t, before, after)
	})

	t.Run("delete removes exactly one, order preserved", func(t *testing.T) {
		svc, _ := newFilterService(t)
		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))

		a, err := svc.SavePreset(ctx, "a")
		require.NoError(t, err)
		b, err := svc.SavePreset(ctx, "b")
		require.NoError(t, err)
		c, err := svc.SavePreset(ctx, "c")
		require.NoError(t, err)

		require.NoError(t, svc.DeletePreset(ctx, b.ID))

		presets := svc.Presets()
		require.Len(t, presets, 2)
		assert.Equal(t, a.ID, presets[0].ID)
		assert.Equal(t, c.ID, presets[1].ID)
	})

	t.Run("delete with unknown id is a silent no-op", func(t *testing.T) {
		svc, _ := newFilterService(t)
		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))
		_, err := svc.SavePreset(ctx, "keep")
		require.NoError(t, err)

		require.NoError(t, svc.DeletePreset(ctx, "missing"))
		assert.Len(t, svc.Presets(), 1)
	})
}

func TestFilterService_Persistence(t *testing.T) {
	ctx := context.Background()
	restaurant := string(domain.VerticalRestaurant)

	t.Run("presets survive a restart", func(t *testing.T) {
		settings := mocks.NewInMemorySettings()
		svc := services.NewFilterService(ctx, settings, testLogger())
		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))
		saved, err := svc.SavePreset(ctx, "restaurants")
		require.NoError(t, err)

		reloaded := services.NewFilterService(ctx, settings, testLogger())

		presets := reloaded.Presets()
		require.Len(t, presets, 1)
		assert.Equal(t, saved, presets[0])
	})

	t.Run("malformed stored data falls back to empty", func(t *testing.T) {
		settings := mocks.NewInMemorySettings()
		settings.Seed(services.PresetsSettingKey, "{not json")

		svc := services.NewFilterService(ctx, settings, testLogger())

		assert.Empty(t, svc.Presets())
	})

	t.Run("failed persist rolls back the save", func(t *testing.T) {
		repo := mocks.NewMockSettingsRepository()
		repo.On("Get", mock.Anything, services.PresetsSettingKey).
			Return("", apperrors.ErrSettingNotFound)
		repo.On("Put", mock.Anything, services.PresetsSettingKey, mock.Anything).
			Return(errors.New("disk full"))

		svc := services.NewFilterService(ctx, repo, testLogger())
		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))

		_, err := svc.SavePreset(ctx, "doomed")
		require.Error(t, err)
		assert.Empty(t, svc.Presets())
		repo.AssertExpectations(t)
	})

	t.Run("stored payload is a json array", func(t *testing.T) {
		svc, settings := newFilterService(t)
		require.NoError(t, svc.SetChartFilter(domain.DimensionVertical, &restaurant))
		_, err := svc.SavePreset(ctx, "restaurants")
		require.NoError(t, err)

		raw, err := settings.Get(ctx, services.PresetsSettingKey)
		require.NoError(t, err)

		var stored []domain.FilterPreset
		require.NoError(t, json.Unmarshal([]byte(raw), &stored))
		require.Len(t, stored, 1)
		assert.Equal(t, "restaurants", stored[0].Name)
	})
}
