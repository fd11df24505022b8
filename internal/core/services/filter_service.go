package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lindseymertz/lily/internal/core/domain"
	apperrors "github.com/lindseymertz/lily/internal/core/errors"
	"github.com/lindseymertz/lily/internal/core/ports"
)

// PresetsSettingKey is the durable storage key for the preset collection.
const PresetsSettingKey = "dashboard.filter_presets"

// FilterService owns the shared chart-filter and date-range selections and
// the saved preset collection. Filters and range live in memory only; every
// preset mutation is written through to the settings repository.
type FilterService struct {
	mu       sync.Mutex
	settings ports.SettingsRepository
	logger   *slog.Logger

	filters   domain.ChartFilters
	dateRange domain.DateRange
	presets   []domain.FilterPreset
	version   uint64
}

var _ ports.FilterStore = (*FilterService)(nil)

// NewFilterService constructs the store and loads any persisted presets.
// Absent or malformed stored data falls back to an empty collection; the
// failure is logged, never surfaced.
func NewFilterService(ctx context.Context, settings ports.SettingsRepository, logger *slog.Logger) *FilterService {
	s := &FilterService{
		settings:  settings,
		logger:    logger.With("service", "filters"),
		dateRange: domain.DateRange{Preset: domain.RangeAll},
	}
	s.loadPresets(ctx)
	return s
}

func (s *FilterService) loadPresets(ctx context.Context) {
	raw, err := s.settings.Get(ctx, PresetsSettingKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			s.logger.Warn("could not read saved presets, starting empty", "error", err)
		}
		return
	}
	var presets []domain.FilterPreset
	if err := json.Unmarshal([]byte(raw), &presets); err != nil {
		s.logger.Warn("discarding malformed preset data", "error", err)
		return
	}
	s.presets = presets
}

// SetChartFilter sets one chart dimension, leaving the others untouched.
// A nil value clears the dimension.
func (s *FilterService) SetChartFilter(dimension domain.Dimension, value *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.filters.Set(dimension, value) {
		return apperrors.ErrInvalidDimension
	}
	s.version++
	return nil
}

// ClearChartFilters resets all four chart dimensions to nil.
func (s *FilterService) ClearChartFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = domain.ChartFilters{}
	s.version++
}

// HasActiveChartFilters reports whether any chart dimension is constrained.
func (s *FilterService) HasActiveChartFilters() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filters.HasActive()
}

// SetDateRange replaces the entire date range atomically.
func (s *FilterService) SetDateRange(dr domain.DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dateRange = dr
	s.version++
}

// Snapshot returns the current chart filters and date range.
func (s *FilterService) Snapshot() (domain.ChartFilters, domain.DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filters, s.dateRange
}

// SavePreset captures the current selections under a freshly generated id
// and appends the preset to the collection. Saving requires at least one
// active filter or a non-"all" date range.
func (s *FilterService) SavePreset(ctx context.Context, name string) (domain.FilterPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return domain.FilterPreset{}, apperrors.ErrNameRequired
	}
	if !s.filters.HasActive() && s.dateRange.IsAll() {
		return domain.FilterPreset{}, apperrors.ErrNoActiveFilters
	}

	preset := domain.FilterPreset{
		ID:        uuid.NewString(),
		Name:      name,
		Filters:   s.filters,
		DateRange: s.dateRange,
	}
	s.presets = append(s.presets, preset)

	if err := s.persistPresets(ctx); err != nil {
		s.presets = s.presets[:len(s.presets)-1]
		return domain.FilterPreset{}, err
	}
	s.version++
	return preset, nil
}

// LoadPreset atomically restores a preset's filters and date range. A
// missing id is a silent no-op.
func (s *FilterService) LoadPreset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.presets {
		if p.ID == id {
			s.filters = p.Filters
			s.dateRange = p.DateRange
			s.version++
			return
		}
	}
}

// DeletePreset removes the matching preset and persists the collection.
// A missing id is a silent no-op.
func (s *FilterService) DeletePreset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.presets {
		if p.ID != id {
			continue
		}
		removed := p
		s.presets = append(s.presets[:i], s.presets[i+1:]...)
		if err := s.persistPresets(ctx); err != nil {
			// Put the entry back where it was; storage and memory must agree.
			s.presets = append(s.presets[:i], append([]domain.FilterPreset{removed}, s.presets[i:]...)...)
			return err
		}
		s.version++
		return nil
	}
	return nil
}

// Presets returns the saved presets in insertion order.
func (s *FilterService) Presets() []domain.FilterPreset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.FilterPreset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Version increases with every mutation; derived views key caches on it.
func (s *FilterService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.version
}

func (s *FilterService) persistPresets(ctx context.Context) error {
	data, err := json.Marshal(s.presets)
	if err != nil {
		return fmt.Errorf("marshal presets: %w", err)
	}
	if err := s.settings.Put(ctx, PresetsSettingKey, string(data)); err != nil {
		return fmt.Errorf("persist presets: %w", err)
	}
	return nil
}
