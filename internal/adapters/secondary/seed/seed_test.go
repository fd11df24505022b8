package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindseymertz/lily/internal/adapters/secondary/seed"
	"github.com/lindseymertz/lily/internal/core/domain"
)

func TestSource_Load(t *testing.T) {
	records, err := seed.NewSource().Load()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	t.Run("request ids are unique", func(t *testing.T) {
		seen := make(map[string]bool, len(records))
		for _, r := range records {
			assert.False(t, seen[r.RequestID], "duplicate id %s", r.RequestID)
			seen[r.RequestID] = true
		}
	})

	t.Run("every enum value is in its closed set", func(t *testing.T) {
		for _, r := range records {
			assert.Contains(t, domain.Verticals, r.Vertical, r.RequestID)
			assert.Contains(t, domain.Statuses, r.Status, r.RequestID)
			assert.Contains(t, domain.IssueCategories, r.IssueCategory, r.RequestID)
			assert.Contains(t, domain.Severities, r.Urgency, r.RequestID)
			assert.Contains(t, domain.Severities, r.Priority, r.RequestID)
			assert.Contains(t, domain.AccountHealths, r.AccountHealth, r.RequestID)
		}
	})

	t.Run("dates parse and numerics are non-negative", func(t *testing.T) {
		for _, r := range records {
			_, ok := r.RequestedOn()
			assert.True(t, ok, "%s: requestDate %q", r.RequestID, r.RequestDate)
			assert.GreaterOrEqual(t, r.SiteCount, 0, r.RequestID)
			assert.GreaterOrEqual(t, r.TimeToRespond, 0.0, r.RequestID)
			assert.GreaterOrEqual(t, r.TimeToResolution, 0.0, r.RequestID)
		}
	})

	t.Run("the collection exercises the breach thresholds", func(t *testing.T) {
		thresholds := domain.DefaultSLAThresholds()
		breaching := 0
		for _, r := range records {
			if thresholds.Breaches(r) {
				breaching++
			}
		}
		assert.Greater(t, breaching, 0)
		assert.Less(t, breaching, len(records))
	})
}
