package domain

// Default SLA thresholds, in hours.
const (
	DefaultResponseThresholdHours   = 12
	DefaultResolutionThresholdHours = 72
)

// SLAThresholds holds the configured breach limits, in hours.
type SLAThresholds struct {
	ResponseTimeHours   int `json:"responseTimeHours"`
	ResolutionTimeHours int `json:"resolutionTimeHours"`
}

// DefaultSLAThresholds returns the documented defaults {12, 72}.
func DefaultSLAThresholds() SLAThresholds {
	return SLAThresholds{
		ResponseTimeHours:   DefaultResponseThresholdHours,
		ResolutionTimeHours: DefaultResolutionThresholdHours,
	}
}

// BreachesResponse reports whether the record took longer to first respond
// than the response threshold allows. The comparison is strict.
func (t SLAThresholds) BreachesResponse(r ServiceRequest) bool {
	return r.TimeToRespond > float64(t.ResponseTimeHours)
}

// BreachesResolution reports whether the record took longer to resolve than
// the resolution threshold allows.
func (t SLAThresholds) BreachesResolution(r ServiceRequest) bool {
	return r.TimeToResolution > float64(t.ResolutionTimeHours)
}

// Breaches reports whether the record breaches either threshold.
func (t SLAThresholds) Breaches(r ServiceRequest) bool {
	return t.BreachesResponse(r) || t.BreachesResolution(r)
}
