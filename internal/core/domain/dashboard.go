package domain

// GroupCount is one partition of a categorical breakdown. Partition order
// follows first occurrence in the source collection; chart segment order
// depends on it.
type GroupCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// GroupAverage is the mean time-to-resolution for one partition, rounded to
// the nearest whole hour.
type GroupAverage struct {
	Value    string `json:"value"`
	AvgHours int    `json:"avgHours"`
}

// Breakdown pairs the counts and average durations for one dimension of the
// currently filtered collection.
type Breakdown struct {
	Dimension Dimension      `json:"dimension"`
	Counts    []GroupCount   `json:"counts"`
	Averages  []GroupAverage `json:"averages"`
}

// PeriodDelta contrasts the current window with the immediately preceding
// one. PercentChange is nil when the previous window is empty; there is no
// comparison to display.
type PeriodDelta struct {
	CurrentCount  int      `json:"currentCount"`
	PreviousCount int      `json:"previousCount"`
	PercentChange *float64 `json:"percentChange"`
}

// Summary is the card row of the dashboard: headline aggregates over the
// filtered collection, a sparkline series per metric, and the
// period-over-period delta.
type Summary struct {
	TotalRequests      int                  `json:"totalRequests"`
	OpenRequests       int                  `json:"openRequests"`
	AvgResolutionHours int                  `json:"avgResolutionHours"`
	SLABreaches        int                  `json:"slaBreaches"`
	AtRiskAccounts     int                  `json:"atRiskAccounts"`
	Sparklines         map[string][]float64 `json:"sparklines"`
	Comparison         PeriodDelta          `json:"comparison"`
}
