package analytics

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lindseymertz/lily/internal/core/domain"
)

// PageSize is the fixed number of rows per table page.
const PageSize = 50

// SortKey names a sortable table column.
type SortKey string

const (
	SortByRequestID        SortKey = "requestId"
	SortByAccountName      SortKey = "accountName"
	SortByVertical         SortKey = "vertical"
	SortBySiteCount        SortKey = "siteCount"
	SortByIssueCategory    SortKey = "issueCategory"
	SortByRequestDate      SortKey = "requestDate"
	SortByStatus           SortKey = "status"
	SortByUrgency          SortKey = "urgency"
	SortByPriority         SortKey = "priority"
	SortByTimeToRespond    SortKey = "timeToRespond"
	SortByTimeToResolution SortKey = "timeToResolution"
	SortByResolutionDate   SortKey = "resolutionDate"
	SortByAccountHealth    SortKey = "accountHealth"
)

// SortState is the single active sort key and its direction.
type SortState struct {
	Key  SortKey `json:"key"`
	Desc bool    `json:"desc"`
}

// DefaultSort is request date, newest first.
func DefaultSort() SortState {
	return SortState{Key: SortByRequestDate, Desc: true}
}

// Toggle applies a column-header click: clicking the active key flips the
// direction, clicking a new key resets it to ascending.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Desc: !s.Desc}
	}
	return SortState{Key: key}
}

// ColumnFilters are the table's six local per-column enum filters. They AND
// together with the shared chart filters; both sets of predicates apply
// simultaneously and the chart filters are never loosened locally.
type ColumnFilters struct {
	Vertical      *string `json:"vertical"`
	Status        *string `json:"status"`
	IssueCategory *string `json:"issueCategory"`
	Urgency       *string `json:"urgency"`
	Priority      *string `json:"priority"`
	AccountHealth *string `json:"accountHealth"`
}

// Matches reports whether the record satisfies every non-nil column filter.
func (c ColumnFilters) Matches(r domain.ServiceRequest) bool {
	checks := []struct {
		want *string
		got  string
	}{
		{c.Vertical, string(r.Vertical)},
		{c.Status, string(r.Status)},
		{c.IssueCategory, string(r.IssueCategory)},
		{c.Urgency, string(r.Urgency)},
		{c.Priority, string(r.Priority)},
		{c.AccountHealth, string(r.AccountHealth)},
	}
	for _, ch := range checks {
		if ch.want != nil && ch.got != *ch.want {
			return false
		}
	}
	return true
}

// TableQuery is the table view's local state, layered on top of the already
// chart- and date-filtered subset.
type TableQuery struct {
	Search  string
	Columns ColumnFilters
	Sort    SortState
	Page    int
}

// TablePage is one page of the derived table view.
type TablePage struct {
	Rows       []domain.ServiceRequest `json:"rows"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalRows  int                     `json:"totalRows"`
	TotalPages int                     `json:"totalPages"`
}

// TableView searches, filters, sorts and paginates the given records.
// Free-text search matches case-insensitively against account name or
// request id. String columns compare with locale-aware ordering, numeric
// columns by numeric difference. Out-of-range page indexes clamp to the
// valid range; requesting past the last page is not an error.
func TableView(records []domain.ServiceRequest, q TableQuery) TablePage {
	rows := make([]domain.ServiceRequest, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, r := range records {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.AccountName), needle) &&
			!strings.Contains(strings.ToLower(r.RequestID), needle) {
			continue
		}
		if !q.Columns.Matches(r) {
			continue
		}
		rows = append(rows, r)
	}

	st := q.Sort
	if st.Key == "" {
		st = DefaultSort()
	}
	coll := collate.New(language.English)
	sort.SliceStable(rows, func(i, j int) bool {
		c := compareRows(coll, rows[i], rows[j], st.Key)
		if st.Desc {
			return c > 0
		}
		return c < 0
	})

	total := len(rows)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	lo := (page - 1) * PageSize
	hi := lo + PageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	return TablePage{
		Rows:       rows[lo:hi],
		Page:       page,
		PageSize:   PageSize,
		TotalRows:  total,
		TotalPages: totalPages,
	}
}

func compareRows(coll *collate.Collator, a, b domain.ServiceRequest, key SortKey) int {
	switch key {
	case SortBySiteCount:
		return compareFloat(float64(a.SiteCount), float64(b.SiteCount))
	case SortByTimeToRespond:
		return compareFloat(a.TimeToRespond, b.TimeToRespond)
	case SortByTimeToResolution:
		return compareFloat(a.TimeToResolution, b.TimeToResolution)
	}
	return coll.CompareString(stringField(a, key), stringField(b, key))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func stringField(r domain.ServiceRequest, key SortKey) string {
	switch key {
	case SortByRequestID:
		return r.RequestID
	case SortByAccountName:
		return r.AccountName
	case SortByVertical:
		return string(r.Vertical)
	case SortByIssueCategory:
		return string(r.IssueCategory)
	case SortByStatus:
		return string(r.Status)
	case SortByUrgency:
		return string(r.Urgency)
	case SortByPriority:
		return string(r.Priority)
	case SortByResolutionDate:
		return r.ResolutionDate
	case SortByAccountHealth:
		return string(r.AccountHealth)
	}
	// Default column; ISO dates collate chronologically.
	return r.RequestDate
}
