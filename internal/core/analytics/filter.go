// Package analytics is the pure filter/aggregation engine behind the
// dashboard. Every function is total over well-formed input: empty
// collections yield empty or zero aggregates, never an error. Calendar-
// relative computations take an explicit "now" so results stay frozen at
// the moment of selection.
package analytics

import (
	"github.com/lindseymertz/lily/internal/core/domain"
)

// Filter returns the subset of records matching every non-nil chart filter
// and falling inside the date range. Records keep their collection order.
// Records whose request date cannot be parsed are excluded whenever a date
// constraint is active.
func Filter(records []domain.ServiceRequest, filters domain.ChartFilters, dr domain.DateRange) []domain.ServiceRequest {
	out := make([]domain.ServiceRequest, 0, len(records))
	for _, r := range records {
		if !filters.Matches(r) {
			continue
		}
		if !dr.IsAll() {
			d, ok := r.RequestedOn()
			if !ok || !dr.Contains(d) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
