package handler

import (
	"net/http"

	"clinicbook/internal/availability/service"
	apperrors "clinicbook/pkg/errors"
	httputil "clinicbook/pkg/http"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
	"clinicbook/pkg/wallclock"

	"github.com/julienschmidt/httprouter"
)

// AvailabilityHandler serves resolved bookable windows. It is read-only;
// writes go through the hours and override handlers.
type AvailabilityHandler struct {
	resolver service.ResolverService
	log      *logger.Logger
}

func NewAvailabilityHandler(resolver service.ResolverService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		resolver: resolver,
		log:      log,
	}
}

func (h *AvailabilityHandler) Resolve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	locationID := query.Get("location_id")
	dateStr := query.Get("date")
	tz := query.Get("tz")

	if locationID == "" || dateStr == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Both 'location_id' and 'date' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Resolve", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	date, err := wallclock.ParseDate(dateStr)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid date, expected YYYY-MM-DD: "+dateStr)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Resolve", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	windows, err := h.resolver.Resolve(r.Context(), locationID, date, tz)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Resolve", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, model.DayAvailability{Date: date.String(), Windows: windows}); err != nil {
		h.log.Error("failed to write success response", "handler", "Resolve", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) ResolveRange(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	locationID := query.Get("location_id")
	fromStr := query.Get("from")
	toStr := query.Get("to")
	tz := query.Get("tz")

	if locationID == "" || fromStr == "" || toStr == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'location_id', 'from' and 'to' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ResolveRange", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	from, err := wallclock.ParseDate(fromStr)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid from date, expected YYYY-MM-DD: "+fromStr)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResolveRange", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	to, err := wallclock.ParseDate(toStr)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid to date, expected YYYY-MM-DD: "+toStr)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResolveRange", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	days, err := h.resolver.ResolveRange(r.Context(), locationID, from, to, tz)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResolveRange", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, days); err != nil {
		h.log.Error("failed to write success response", "handler", "ResolveRange", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability", h.Resolve)
	router.GET("/api/v1/availability/range", h.ResolveRange)
}
