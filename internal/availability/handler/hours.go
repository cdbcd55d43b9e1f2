package handler

import (
	"encoding/json"
	"net/http"

	"clinicbook/internal/availability/service"
	"clinicbook/pkg/config"
	httputil "clinicbook/pkg/http"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type HoursHandler struct {
	service service.HoursService
	log     *logger.Logger
}

func NewHoursHandler(service service.HoursService, log *logger.Logger) *HoursHandler {
	return &HoursHandler{
		service: service,
		log:     log,
	}
}

func (h *HoursHandler) Upsert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var up model.HoursUpsert
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Upsert", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	hours, err := h.service.Upsert(r.Context(), &up)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, hours); err != nil {
		h.log.Error("failed to write success response", "handler", "Upsert", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HoursHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	locationID := r.URL.Query().Get("location_id")
	if locationID == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'location_id' query parameter is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "List", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	hours, err := h.service.List(r.Context(), locationID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, hours); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HoursHandler) AddWindow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	locationID := ps.ByName("locationID")
	weekday := config.Weekday(ps.ByName("weekday"))

	var window model.DayWindow
	if err := json.NewDecoder(r.Body).Decode(&window); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "AddWindow", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	stored, err := h.service.AddWindow(r.Context(), locationID, weekday, window)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AddWindow", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, stored); err != nil {
		h.log.Error("failed to write created response", "handler", "AddWindow", "operation", "WriteCreated", "error", err)
	}
}

func (h *HoursHandler) UpdateWindow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	locationID := ps.ByName("locationID")
	weekday := config.Weekday(ps.ByName("weekday"))
	windowID := ps.ByName("windowID")

	var patch model.DayWindowPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateWindow", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	updated, err := h.service.UpdateWindow(r.Context(), locationID, weekday, windowID, &patch)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateWindow", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateWindow", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HoursHandler) RemoveWindow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	locationID := ps.ByName("locationID")
	weekday := config.Weekday(ps.ByName("weekday"))
	windowID := ps.ByName("windowID")

	if err := h.service.RemoveWindow(r.Context(), locationID, weekday, windowID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RemoveWindow", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *HoursHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/hours", h.Upsert)
	router.GET("/api/v1/hours", h.List)
	router.POST("/api/v1/hours/:locationID/:weekday/windows", h.AddWindow)
	router.PATCH("/api/v1/hours/:locationID/:weekday/windows/:windowID", h.UpdateWindow)
	router.DELETE("/api/v1/hours/:locationID/:weekday/windows/:windowID", h.RemoveWindow)
}
