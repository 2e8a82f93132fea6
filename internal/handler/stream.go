package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/idoevents/api/internal/model"
	"github.com/idoevents/api/internal/service"
)

// StreamHandler handles SSE event streaming
type StreamHandler struct {
	hub *service.Hub
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(hub *service.Hub) *StreamHandler {
	return &StreamHandler{
		hub: hub,
	}
}

// Stream handles GET /api/stream. Every connected client receives every
// broadcast; there is no per-client filtering.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, model.NewInternalError("Streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	subscriberID := uuid.New().String()

	sub := h.hub.Subscribe(subscriberID)
	defer h.hub.Unsubscribe(subscriberID)

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"subscriberId\":\"%s\"}\n\n", subscriberID)
	flusher.Flush()

	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			fmt.Fprint(w, event.Format())
			flusher.Flush()

		case <-sub.Done:
			return

		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}
