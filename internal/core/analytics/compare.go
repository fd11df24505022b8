package analytics

import (
	"time"

	"github.com/lindseymertz/lily/internal/core/domain"
)

// DefaultComparisonDays is the period-over-period window size.
const DefaultComparisonDays = 30

// PeriodComparison holds the two subsets being contrasted: the current
// window [today-N, today] and the previous half-open window
// [today-2N, today-N).
type PeriodComparison struct {
	Current  []domain.ServiceRequest
	Previous []domain.ServiceRequest
}

// ComparePeriods partitions records into the current and previous windows
// of N calendar days ending today. Records outside both windows, or with an
// unparseable date, belong to neither.
func ComparePeriods(records []domain.ServiceRequest, days int, now time.Time) PeriodComparison {
	if days <= 0 {
		days = DefaultComparisonDays
	}
	today := domain.CivilDate(now)
	currentStart := today.AddDate(0, 0, -days)
	previousStart := today.AddDate(0, 0, -2*days)

	var cmp PeriodComparison
	for _, r := range records {
		d, ok := r.RequestedOn()
		if !ok {
			continue
		}
		d = domain.CivilDate(d)
		switch {
		case !d.Before(currentStart) && !d.After(today):
			cmp.Current = append(cmp.Current, r)
		case !d.Before(previousStart) && d.Before(currentStart):
			cmp.Previous = append(cmp.Previous, r)
		}
	}
	return cmp
}

// PercentChange returns (current-previous)/previous*100. The second return
// is false when the previous value is zero: the change is undefined and the
// caller displays it as absent rather than a number.
func PercentChange(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	return (current - previous) / previous * 100, true
}

// Delta summarizes a comparison as counts plus the optional percent change.
func (c PeriodComparison) Delta() domain.PeriodDelta {
	delta := domain.PeriodDelta{
		CurrentCount:  len(c.Current),
		PreviousCount: len(c.Previous),
	}
	if pct, ok := PercentChange(float64(len(c.Current)), float64(len(c.Previous))); ok {
		delta.PercentChange = &pct
	}
	return delta
}
