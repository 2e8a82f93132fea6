package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/idoevents/api/internal/middleware"
	"github.com/idoevents/api/internal/model"
	"github.com/idoevents/api/internal/service"
)

// CommentHandler handles event comment endpoints
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CommentRequest represents the add-comment endpoint request body.
// Any author fields a client sends are ignored; the author is always
// the authenticated caller.
type CommentRequest struct {
	Text string `json:"text"`
}

// List handles GET /api/events/{eventId}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	comments, err := h.commentService.ListByEvent(r.Context(), eventID)
	if err != nil {
		slog.Error("listing comments", "error", err, "event", eventID)
		WriteError(w, model.NewInternalError("Failed to fetch comments"))
		return
	}
	WriteJSON(w, http.StatusOK, comments)
}

// Add handles POST /api/events/{eventId}/comments
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	callerID := middleware.GetUserID(r.Context())

	var req CommentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	comment, err := h.commentService.Add(r.Context(), eventID, callerID, req.Text)
	if err != nil {
		h.handleCommentError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) handleCommentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCommentTextRequired):
		WriteError(w, model.NewBadRequestError("Comment text is required"))
	case errors.Is(err, service.ErrEventNotFound):
		WriteError(w, model.NewNotFoundError("Event"))
	default:
		slog.Error("unhandled comment error", "error", err)
		WriteError(w, model.NewInternalError(""))
	}
}
