package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/idoevents/api/internal/model"
	"github.com/idoevents/api/internal/service"
)

// EventHandler handles event CRUD and statistics endpoints
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// EventRequest represents the create/update endpoint request body
type EventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Location    string     `json:"location"`
	StartTime   *time.Time `json:"startTime"`
	TeamMembers []string   `json:"teamMembers"`
}

// List handles GET /api/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		slog.Error("listing events", "error", err)
		WriteError(w, model.NewInternalError("Failed to fetch events"))
		return
	}
	WriteJSON(w, http.StatusOK, events)
}

// Create handles POST /api/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	event, err := h.eventService.Create(r.Context(), h.toServiceRequest(req))
	if err != nil {
		h.handleEventError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, event)
}

// Update handles PUT /api/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req EventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	event, err := h.eventService.Update(r.Context(), id, h.toServiceRequest(req))
	if err != nil {
		h.handleEventError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		h.handleEventError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Event deleted")
}

// Statistics handles GET /api/statistics
func (h *EventHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.eventService.Statistics(r.Context())
	if err != nil {
		slog.Error("computing statistics", "error", err)
		WriteError(w, model.NewInternalError("Failed to fetch statistics"))
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (h *EventHandler) toServiceRequest(req EventRequest) service.EventRequest {
	return service.EventRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Location:    req.Location,
		StartTime:   req.StartTime,
		TeamMembers: req.TeamMembers,
	}
}

func (h *EventHandler) handleEventError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		WriteError(w, model.NewNotFoundError("Event"))
	case errors.Is(err, service.ErrTitleRequired):
		WriteError(w, model.NewBadRequestError("Title is required"))
	default:
		slog.Error("unhandled event error", "error", err)
		WriteError(w, model.NewInternalError(""))
	}
}
