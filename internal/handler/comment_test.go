package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/idoevents/api/internal/middleware"
	"github.com/idoevents/api/internal/model"
	"github.com/idoevents/api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCommentRepo struct {
	comments []*model.Comment
	nextID   int
}

func (r *memCommentRepo) ListByEvent(ctx context.Context, eventID string) ([]*model.Comment, error) {
	out := make([]*model.Comment, 0)
	for _, c := range r.comments {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	r.nextID++
	comment.ID = fmt.Sprintf("comment:%d", r.nextID)
	r.comments = append(r.comments, comment)
	return nil
}

func newCommentHandler() (*CommentHandler, *memCommentRepo, *recordingHub) {
	repo := &memCommentRepo{}
	hub := &recordingHub{}
	dir := &memDirectory{refs: map[string]model.MemberRef{
		"user:1": {ID: "user:1", Name: "Alice"},
	}}
	svc := service.NewCommentService(service.CommentServiceConfig{
		CommentRepo: repo,
		Members:     dir,
		Hub:         hub,
	})
	return NewCommentHandler(svc), repo, hub
}

func addComment(t *testing.T, h *CommentHandler, eventID, callerID, text string) *httptest.ResponseRecorder {
	t.Helper()
	rec := doJSON(t, func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.UserIDKey, callerID)
		h.Add(w, r.WithContext(ctx))
	}, http.MethodPost, "/api/events/"+eventID+"/comments", CommentRequest{Text: text},
		map[string]string{"eventId": eventID})
	return rec
}

func TestCommentAdd(t *testing.T) {
	h, repo, hub := newCommentHandler()

	rec := addComment(t, h, "event:1", "user:1", "Looks great")
	require.Equal(t, http.StatusCreated, rec.Code)

	var detail model.CommentDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Looks great", detail.Text)
	assert.Equal(t, "user:1", detail.User.ID)
	assert.Equal(t, "Alice", detail.User.Name)

	require.Len(t, repo.comments, 1)
	assert.Equal(t, "user:1", repo.comments[0].UserID)

	require.Len(t, hub.events, 1)
	assert.Equal(t, service.CommentAdded, hub.events[0].Name)
}

func TestCommentAdd_AuthorIsAlwaysCaller(t *testing.T) {
	h, repo, _ := newCommentHandler()

	// A spoofed author field in the body is ignored
	rec := doJSON(t, func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.UserIDKey, "user:1")
		h.Add(w, r.WithContext(ctx))
	}, http.MethodPost, "/api/events/event:1/comments",
		map[string]string{"text": "hi", "user": "user:999"},
		map[string]string{"eventId": "event:1"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.comments, 1)
	assert.Equal(t, "user:1", repo.comments[0].UserID)
}

func TestCommentAdd_RequiresText(t *testing.T) {
	h, _, hub := newCommentHandler()

	for _, text := range []string{"", "   "} {
		rec := addComment(t, h, "event:1", "user:1", text)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Comment text is required")
	}
	assert.Empty(t, hub.events)
}

func TestCommentList(t *testing.T) {
	h, _, _ := newCommentHandler()

	require.Equal(t, http.StatusCreated, addComment(t, h, "event:1", "user:1", "first").Code)
	require.Equal(t, http.StatusCreated, addComment(t, h, "event:1", "user:1", "second").Code)
	require.Equal(t, http.StatusCreated, addComment(t, h, "event:2", "user:1", "elsewhere").Code)

	rec := doJSON(t, h.List, http.MethodGet, "/api/events/event:1/comments", nil,
		map[string]string{"eventId": "event:1"})

	require.Equal(t, http.StatusOK, rec.Code)

	var comments []*model.CommentDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	for _, c := range comments {
		assert.Equal(t, "event:1", c.EventID)
		assert.Equal(t, "Alice", c.User.Name)
	}
}
