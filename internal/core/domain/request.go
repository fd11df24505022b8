package domain

import "time"

// DateLayout is the wire format for request and resolution dates.
// Dates are compared date-only; no time-of-day component is carried.
const DateLayout = "2006-01-02"

// Vertical is the line of business an account belongs to.
type Vertical string

const (
	VerticalRestaurant Vertical = "Restaurant"
	VerticalFuel       Vertical = "Fuel"
	VerticalGrocery    Vertical = "Grocery"
)

// RequestStatus represents the lifecycle state of a service request.
type RequestStatus string

const (
	StatusResolved   RequestStatus = "Resolved"
	StatusInProgress RequestStatus = "In Progress"
)

// Severity is the shared scale for urgency and priority.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// IssueCategory classifies what a request is about.
type IssueCategory string

const (
	CategoryHardware     IssueCategory = "Hardware"
	CategorySoftware     IssueCategory = "Software"
	CategoryBilling      IssueCategory = "Billing"
	CategoryConnectivity IssueCategory = "Connectivity"
	CategoryTraining     IssueCategory = "Training"
)

// AccountHealth is the relationship health tier of the requesting account.
type AccountHealth string

const (
	HealthExcellent AccountHealth = "Excellent"
	HealthGood      AccountHealth = "Good"
	HealthFair      AccountHealth = "Fair"
	HealthAtRisk    AccountHealth = "At Risk"
	HealthCritical  AccountHealth = "Critical"
)

// Verticals, Statuses, Severities, IssueCategories and AccountHealths list
// the closed value sets, in display order.
var (
	Verticals       = []Vertical{VerticalRestaurant, VerticalFuel, VerticalGrocery}
	Statuses        = []RequestStatus{StatusResolved, StatusInProgress}
	Severities      = []Severity{SeverityLow, SeverityMedium, SeverityHigh}
	IssueCategories = []IssueCategory{
		CategoryHardware, CategorySoftware, CategoryBilling,
		CategoryConnectivity, CategoryTraining,
	}
	AccountHealths = []AccountHealth{
		HealthExcellent, HealthGood, HealthFair, HealthAtRisk, HealthCritical,
	}
)

// ServiceRequest is an immutable customer-service request record. The
// collection is supplied once at startup and never mutated; all analytics
// derive from copies of this value.
type ServiceRequest struct {
	RequestID        string        `json:"requestId"`
	AccountName      string        `json:"accountName"`
	Vertical         Vertical      `json:"vertical"`
	SiteCount        int           `json:"siteCount"`
	IssueCategory    IssueCategory `json:"issueCategory"`
	RequestDate      string        `json:"requestDate"`
	Status           RequestStatus `json:"status"`
	Urgency          Severity      `json:"urgency"`
	Priority         Severity      `json:"priority"`
	TimeToRespond    float64       `json:"timeToRespond"`
	TimeToResolution float64       `json:"timeToResolution"`
	ResolutionDate   string        `json:"resolutionDate"`
	AccountHealth    AccountHealth `json:"accountHealth"`
}

// RequestedOn parses the request date. The second return is false when the
// stored string is not a parseable date.
func (r ServiceRequest) RequestedOn() (time.Time, bool) {
	return parseDate(r.RequestDate)
}

// ResolvedOn parses the resolution date.
func (r ServiceRequest) ResolvedOn() (time.Time, bool) {
	return parseDate(r.ResolutionDate)
}

func parseDate(s string) (time.Time, bool) {
	if len(s) > len(DateLayout) {
		// Tolerate ISO timestamps by taking the date part.
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CivilDate truncates t to midnight UTC so date comparisons ignore
// time-of-day and zone.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
