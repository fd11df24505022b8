// Package seed supplies the static service-request collection embedded in
// the binary. It is the only data source; the collection never changes
// after load.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/lindseymertz/lily/internal/core/domain"
	apperrors "github.com/lindseymertz/lily/internal/core/errors"
	"github.com/lindseymertz/lily/internal/core/ports"
)

//go:embed requests.json
var requestsJSON []byte

// Source implements ports.RequestSource over the embedded dataset.
type Source struct{}

var _ ports.RequestSource = (*Source)(nil)

// NewSource returns the embedded data source.
func NewSource() *Source {
	return &Source{}
}

// Load parses and validates the embedded collection. Malformed data is an
// error here, at startup, so nothing invalid ever reaches the engine.
func (s *Source) Load() ([]domain.ServiceRequest, error) {
	var records []domain.ServiceRequest
	if err := json.Unmarshal(requestsJSON, &records); err != nil {
		return nil, fmt.Errorf("parse embedded dataset: %w", err)
	}

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.RequestID == "" {
			return nil, fmt.Errorf("record %d: %w: empty requestId", i, apperrors.ErrInvalidRecord)
		}
		if seen[r.RequestID] {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.RequestID, apperrors.ErrDuplicateRequestID)
		}
		seen[r.RequestID] = true

		if err := validate(r); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.RequestID, err)
		}
	}
	return records, nil
}

func validate(r domain.ServiceRequest) error {
	if !contains(domain.Verticals, r.Vertical) {
		return fmt.Errorf("%w: vertical %q", apperrors.ErrInvalidRecord, r.Vertical)
	}
	if !contains(domain.Statuses, r.Status) {
		return fmt.Errorf("%w: status %q", apperrors.ErrInvalidRecord, r.Status)
	}
	if !contains(domain.IssueCategories, r.IssueCategory) {
		return fmt.Errorf("%w: issueCategory %q", apperrors.ErrInvalidRecord, r.IssueCategory)
	}
	if !contains(domain.Severities, r.Urgency) {
		return fmt.Errorf("%w: urgency %q", apperrors.ErrInvalidRecord, r.Urgency)
	}
	if !contains(domain.Severities, r.Priority) {
		return fmt.Errorf("%w: priority %q", apperrors.ErrInvalidRecord, r.Priority)
	}
	if !contains(domain.AccountHealths, r.AccountHealth) {
		return fmt.Errorf("%w: accountHealth %q", apperrors.ErrInvalidRecord, r.AccountHealth)
	}
	if r.SiteCount < 0 || r.TimeToRespond < 0 || r.TimeToResolution < 0 {
		return fmt.Errorf("%w: negative numeric field", apperrors.ErrInvalidRecord)
	}
	if _, ok := r.RequestedOn(); !ok {
		return fmt.Errorf("%w: requestDate %q", apperrors.ErrInvalidRecord, r.RequestDate)
	}
	return nil
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
