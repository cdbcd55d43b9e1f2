package handler

import (
	"encoding/json"
	"net/http"

	"clinicbook/internal/availability/service"
	httputil "clinicbook/pkg/http"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type OverrideHandler struct {
	service service.OverrideService
	log     *logger.Logger
}

func NewOverrideHandler(service service.OverrideService, log *logger.Logger) *OverrideHandler {
	return &OverrideHandler{
		service: service,
		log:     log,
	}
}

func (h *OverrideHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var override model.DateOverride
	if err := json.NewDecoder(r.Body).Decode(&override); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), &override)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *OverrideHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	override, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, override); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OverrideHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	locationID := query.Get("location_id")
	from := query.Get("from")
	to := query.Get("to")

	if locationID == "" || from == "" || to == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'location_id', 'from' and 'to' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "List", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	overrides, err := h.service.ListInRange(r.Context(), locationID, from, to)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, overrides); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OverrideHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var patch model.DateOverridePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	updated, err := h.service.Update(r.Context(), id, &patch)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OverrideHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *OverrideHandler) AddWindow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var window model.DayWindow
	if err := json.NewDecoder(r.Body).Decode(&window); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "AddWindow", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	stored, err := h.service.AddWindow(r.Context(), id, window)
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

func (h *OverrideHandler) RemoveWindow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	windowID := ps.ByName("windowID")

	if err := h.service.RemoveWindow(r.Context(), id, windowID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RemoveWindow", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *OverrideHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/overrides", h.Create)
	router.GET("/api/v1/overrides", h.List)
	router.GET("/api/v1/overrides/id/:id", h.GetByID)
	router.PATCH("/api/v1/overrides/id/:id", h.Update)
	router.DELETE("/api/v1/overrides/id/:id", h.Delete)
	router.POST("/api/v1/overrides/id/:id/windows", h.AddWindow)
	router.DELETE("/api/v1/overrides/id/:id/windows/:windowID", h.RemoveWindow)
}
