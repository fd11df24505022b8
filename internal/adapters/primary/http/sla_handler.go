package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lindseymertz/lily/internal/core/domain"
	apperrors "github.com/lindseymertz/lily/internal/core/errors"
	"github.com/lindseymertz/lily/internal/core/ports"
)

// SLAHandler exposes the configurable breach thresholds.
type SLAHandler struct {
	sla          ports.SLAStore
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewSLAHandler creates a new SLA threshold handler
func NewSLAHandler(sla ports.SLAStore, errorHandler *ErrorHandler, logger *slog.Logger) *SLAHandler {
	return &SLAHandler{
		sla:          sla,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "sla"),
	}
}

// RegisterRoutes sets up the routing for the SLA endpoints.
func (h *SLAHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetThresholds)
	r.Put("/", h.HandleSetThresholds)
}

// SetThresholdsRequest carries replacement threshold values. Missing or
// non-positive fields fall back to the current values rather than failing.
type SetThresholdsRequest struct {
	ResponseTimeHours   int `json:"responseTimeHours"`
	ResolutionTimeHours int `json:"resolutionTimeHours"`
}

// HandleGetThresholds returns the active thresholds.
func (h *SLAHandler) HandleGetThresholds(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.sla.Thresholds())
}

// HandleSetThresholds replaces the thresholds and persists them.
func (h *SLAHandler) HandleSetThresholds(w http.ResponseWriter, r *http.Request) {
	var req SetThresholdsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid JSON body"))
		return
	}

	err := h.sla.SetThresholds(r.Context(), domain.SLAThresholds{
		ResponseTimeHours:   req.ResponseTimeHours,
		ResolutionTimeHours: req.ResolutionTimeHours,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, h.sla.Thresholds())
}
