package ports

import (
	"context"

	"github.com/lindseymertz/lily/internal/core/domain"
)

// SettingsRepository is the port for the durable local key/value storage
// the dashboard persists its state into. Values are serialized JSON text.
// Get returns apperrors.ErrSettingNotFound when the key is absent.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// RequestSource supplies the static service-request collection at startup.
// The collection is read-only for the lifetime of the process; there are no
// update notifications.
type RequestSource interface {
	Load() ([]domain.ServiceRequest, error)
}
