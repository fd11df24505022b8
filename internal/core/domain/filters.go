package domain

import "time"

// Dimension names a categorical field of a ServiceRequest that can be
// filtered or grouped on. The four chart dimensions are settable through
// the shared filter state; the table additionally filters on urgency and
// priority locally.
type Dimension string

const (
	DimensionVertical      Dimension = "vertical"
	DimensionStatus        Dimension = "status"
	DimensionIssueCategory Dimension = "issueCategory"
	DimensionAccountHealth Dimension = "accountHealth"
	DimensionUrgency       Dimension = "urgency"
	DimensionPriority      Dimension = "priority"
)

// ChartDimensions are the dimensions bound to chart segments. Clicking a
// segment writes back into the shared filter state for exactly these four.
var ChartDimensions = []Dimension{
	DimensionVertical,
	DimensionStatus,
	DimensionIssueCategory,
	DimensionAccountHealth,
}

// DimensionValue extracts the record's value for a filterable dimension.
// The second return is false for an unknown dimension.
func DimensionValue(r ServiceRequest, d Dimension) (string, bool) {
	switch d {
	case DimensionVertical:
		return string(r.Vertical), true
	case DimensionStatus:
		return string(r.Status), true
	case DimensionIssueCategory:
		return string(r.IssueCategory), true
	case DimensionAccountHealth:
		return string(r.AccountHealth), true
	case DimensionUrgency:
		return string(r.Urgency), true
	case DimensionPriority:
		return string(r.Priority), true
	}
	return "", false
}

// ChartFilters holds at most one selected value per chart dimension.
// A nil entry leaves that dimension unconstrained.
type ChartFilters struct {
	Vertical      *string `json:"vertical"`
	Status        *string `json:"status"`
	IssueCategory *string `json:"issueCategory"`
	AccountHealth *string `json:"accountHealth"`
}

// Set assigns one chart dimension, leaving the others untouched. It returns
// false when d is not a chart dimension.
func (f *ChartFilters) Set(d Dimension, value *string) bool {
	switch d {
	case DimensionVertical:
		f.Vertical = value
	case DimensionStatus:
		f.Status = value
	case DimensionIssueCategory:
		f.IssueCategory = value
	case DimensionAccountHealth:
		f.AccountHealth = value
	default:
		return false
	}
	return true
}

// Value returns the active selection for a chart dimension, or nil.
func (f ChartFilters) Value(d Dimension) *string {
	switch d {
	case DimensionVertical:
		return f.Vertical
	case DimensionStatus:
		return f.Status
	case DimensionIssueCategory:
		return f.IssueCategory
	case DimensionAccountHealth:
		return f.AccountHealth
	}
	return nil
}

// HasActive reports whether at least one dimension is constrained.
func (f ChartFilters) HasActive() bool {
	return f.Vertical != nil || f.Status != nil ||
		f.IssueCategory != nil || f.AccountHealth != nil
}

// Matches reports whether the record satisfies every non-nil dimension.
func (f ChartFilters) Matches(r ServiceRequest) bool {
	for _, d := range ChartDimensions {
		want := f.Value(d)
		if want == nil {
			continue
		}
		got, _ := DimensionValue(r, d)
		if got != *want {
			return false
		}
	}
	return true
}

// RangePreset names a date-range selection mode.
type RangePreset string

const (
	RangeLast7  RangePreset = "last7"
	RangeLast30 RangePreset = "last30"
	RangeLast90 RangePreset = "last90"
	RangeYTD    RangePreset = "ytd"
	RangeCustom RangePreset = "custom"
	RangeAll    RangePreset = "all"
)

// DateRange bounds request dates, inclusive on both ends. For the named
// presets, Start and End are derived from "now" at selection time and stay
// frozen until the range is re-selected. With RangeAll both bounds are nil
// and no date filtering applies.
type DateRange struct {
	Start  *time.Time  `json:"start"`
	End    *time.Time  `json:"end"`
	Preset RangePreset `json:"preset"`
}

// NewDateRange derives a range from a named preset and the moment of
// selection. RangeCustom is not derivable here; use NewCustomDateRange.
func NewDateRange(preset RangePreset, now time.Time) DateRange {
	today := CivilDate(now)
	switch preset {
	case RangeLast7:
		start := today.AddDate(0, 0, -7)
		return DateRange{Start: &start, End: &today, Preset: preset}
	case RangeLast30:
		start := today.AddDate(0, 0, -30)
		return DateRange{Start: &start, End: &today, Preset: preset}
	case RangeLast90:
		start := today.AddDate(0, 0, -90)
		return DateRange{Start: &start, End: &today, Preset: preset}
	case RangeYTD:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: &start, End: &today, Preset: preset}
	default:
		return DateRange{Preset: RangeAll}
	}
}

// NewCustomDateRange builds a user-supplied range. Either bound may be nil.
func NewCustomDateRange(start, end *time.Time) DateRange {
	dr := DateRange{Preset: RangeCustom}
	if start != nil {
		s := CivilDate(*start)
		dr.Start = &s
	}
	if end != nil {
		e := CivilDate(*end)
		dr.End = &e
	}
	return dr
}

// Contains reports whether a civil date falls inside the range.
func (dr DateRange) Contains(date time.Time) bool {
	if dr.Preset == RangeAll {
		return true
	}
	d := CivilDate(date)
	if dr.Start != nil && d.Before(*dr.Start) {
		return false
	}
	if dr.End != nil && d.After(*dr.End) {
		return false
	}
	return true
}

// IsAll reports whether the range imposes no date constraint.
func (dr DateRange) IsAll() bool {
	return dr.Preset == RangeAll || dr.Preset == ""
}

// FilterPreset is a named, saved snapshot of filter and date-range
// selections. Presets keep insertion order; names are not deduplicated.
type FilterPreset struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Filters   ChartFilters `json:"filters"`
	DateRange DateRange    `json:"dateRange"`
}
