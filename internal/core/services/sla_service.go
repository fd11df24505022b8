package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lindseymertz/lily/internal/core/domain"
	apperrors "github.com/lindseymertz/lily/internal/core/errors"
	"github.com/lindseymertz/lily/internal/core/ports"
)

// SLASettingKey is the durable storage key for the thresholds.
const SLASettingKey = "dashboard.sla_thresholds"

// SLAService owns the configured SLA thresholds and exposes the breach
// classification predicates. Every threshold change is written through to
// the settings repository.
type SLAService struct {
	mu       sync.Mutex
	settings ports.SettingsRepository
	logger   *slog.Logger

	thresholds domain.SLAThresholds
	version    uint64
}

var _ ports.SLAStore = (*SLAService)(nil)

// NewSLAService constructs the store with persisted thresholds, falling
// back to the defaults {12, 72} when nothing usable is stored.
func NewSLAService(ctx context.Context, settings ports.SettingsRepository, logger *slog.Logger) *SLAService {
	s := &SLAService{
		settings:   settings,
		logger:     logger.With("service", "sla"),
		thresholds: domain.DefaultSLAThresholds(),
	}
	s.loadThresholds(ctx)
	return s
}

func (s *SLAService) loadThresholds(ctx context.Context) {
	raw, err := s.settings.Get(ctx, SLASettingKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			s.logger.Warn("could not read saved thresholds, using defaults", "error", err)
		}
		return
	}
	var t domain.SLAThresholds
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		s.logger.Warn("discarding malformed threshold data", "error", err)
		return
	}
	if t.ResponseTimeHours > 0 && t.ResolutionTimeHours > 0 {
		s.thresholds = t
	}
}

// Thresholds returns the current thresholds.
func (s *SLAService) Thresholds() domain.SLAThresholds {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.thresholds
}

// SetThresholds replaces both values and persists them. A non-positive
// input coalesces to the current value for that field, the last-known-good
// rule for invalid user input.
func (s *SLAService) SetThresholds(ctx context.Context, t domain.SLAThresholds) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ResponseTimeHours <= 0 {
		t.ResponseTimeHours = s.thresholds.ResponseTimeHours
	}
	if t.ResolutionTimeHours <= 0 {
		t.ResolutionTimeHours = s.thresholds.ResolutionTimeHours
	}

	previous := s.thresholds
	s.thresholds = t

	data, err := json.Marshal(s.thresholds)
	if err != nil {
		s.thresholds = previous
		return fmt.Errorf("marshal thresholds: %w", err)
	}
	if err := s.settings.Put(ctx, SLASettingKey, string(data)); err != nil {
		s.thresholds = previous
		return fmt.Errorf("persist thresholds: %w", err)
	}
	s.version++
	return nil
}

// IsBreachingResponse reports whether the record's response time exceeds
// the response threshold.
func (s *SLAService) IsBreachingResponse(r domain.ServiceRequest) bool {
	return s.Thresholds().BreachesResponse(r)
}

// IsBreachingResolution reports whether the record's resolution time
// exceeds the resolution threshold.
func (s *SLAService) IsBreachingResolution(r domain.ServiceRequest) bool {
	return s.Thresholds().BreachesResolution(r)
}

// IsBreachingSLA reports whether the record breaches either threshold.
func (s *SLAService) IsBreachingSLA(r domain.ServiceRequest) bool {
	return s.Thresholds().Breaches(r)
}

// BreachCount counts the records breaching either threshold.
func (s *SLAService) BreachCount(records []domain.ServiceRequest) int {
	t := s.Thresholds()
	n := 0
	for _, r := range records {
		if t.Breaches(r) {
			n++
		}
	}
	return n
}

// Version increases with every successful threshold change.
func (s *SLAService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.version
}
