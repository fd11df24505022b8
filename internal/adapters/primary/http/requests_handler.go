package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lindseymertz/lily/internal/adapters/primary/validation"
	"github.com/lindseymertz/lily/internal/core/analytics"
	"github.com/lindseymertz/lily/internal/core/domain"
	"github.com/lindseymertz/lily/internal/core/ports"
)

// RequestsHandler serves the paginated records table. The query string
// carries the table's local state: free-text search, per-column filters,
// the active sort and the page index.
type RequestsHandler struct {
	dashboard    ports.DashboardService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewRequestsHandler creates a new requests table handler
func NewRequestsHandler(dashboard ports.DashboardService, errorHandler *ErrorHandler, logger *slog.Logger) *RequestsHandler {
	return &RequestsHandler{
		dashboard:    dashboard,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "requests"),
	}
}

// RegisterRoutes sets up the routing for the table endpoint.
func (h *RequestsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleTable)
}

var sortKeyNames = []string{
	string(analytics.SortByRequestID), string(analytics.SortByAccountName),
	string(analytics.SortByVertical), string(analytics.SortBySiteCount),
	string(analytics.SortByIssueCategory), string(analytics.SortByRequestDate),
	string(analytics.SortByStatus), string(analytics.SortByUrgency),
	string(analytics.SortByPriority), string(analytics.SortByTimeToRespond),
	string(analytics.SortByTimeToResolution), string(analytics.SortByResolutionDate),
	string(analytics.SortByAccountHealth),
}

// HandleTable returns one page of the searched, filtered and sorted table.
func (h *RequestsHandler) HandleTable(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	v := validation.NewValidator()
	v.OneOf("sort", params.Get("sort"), sortKeyNames).
		OneOf("dir", params.Get("dir"), []string{"asc", "desc"}).
		OneOf("vertical", params.Get("vertical"), enumStrings(domain.Verticals)).
		OneOf("status", params.Get("status"), enumStrings(domain.Statuses)).
		OneOf("issueCategory", params.Get("issueCategory"), enumStrings(domain.IssueCategories)).
		OneOf("urgency", params.Get("urgency"), enumStrings(domain.Severities)).
		OneOf("priority", params.Get("priority"), enumStrings(domain.Severities)).
		OneOf("accountHealth", params.Get("accountHealth"), enumStrings(domain.AccountHealths))
	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	sortState := analytics.DefaultSort()
	if key := params.Get("sort"); key != "" {
		sortState = analytics.SortState{
			Key:  analytics.SortKey(key),
			Desc: params.Get("dir") == "desc",
		}
	}

	page := 1
	if raw := params.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}

	q := analytics.TableQuery{
		Search: params.Get("search"),
		Columns: analytics.ColumnFilters{
			Vertical:      optionalParam(params.Get("vertical")),
			Status:        optionalParam(params.Get("status")),
			IssueCategory: optionalParam(params.Get("issueCategory")),
			Urgency:       optionalParam(params.Get("urgency")),
			Priority:      optionalParam(params.Get("priority")),
			AccountHealth: optionalParam(params.Get("accountHealth")),
		},
		Sort: sortState,
		Page: page,
	}

	WriteSuccess(w, h.dashboard.Table(q))
}

func optionalParam(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
