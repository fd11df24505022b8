package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	apperrors "github.com/lindseymertz/lily/internal/core/errors"
)

// MockSettingsRepository is a mock implementation of ports.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) Put(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// InMemorySettings is a map-backed ports.SettingsRepository for tests that
// exercise real persistence round-trips without a database file.
type InMemorySettings struct {
	mu     sync.Mutex
	values map[string]string
}

func NewInMemorySettings() *InMemorySettings {
	return &InMemorySettings{values: make(map[string]string)}
}

func (s *InMemorySettings) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", apperrors.ErrSettingNotFound
	}
	return v, nil
}

func (s *InMemorySettings) Put(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Seed pre-populates a key, for tests covering load-at-construction.
func (s *InMemorySettings) Seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
