package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/idoevents/api/internal/database"
	"github.com/idoevents/api/internal/model"
	"github.com/idoevents/api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEventRepo struct {
	events map[string]*model.Event
	nextID int
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]*model.Event)}
}

func (r *memEventRepo) List(ctx context.Context) ([]*model.Event, error) {
	out := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *memEventRepo) Create(ctx context.Context, event *model.Event) error {
	r.nextID++
	event.ID = fmt.Sprintf("event:%d", r.nextID)
	r.events[event.ID] = event
	return nil
}

func (r *memEventRepo) Update(ctx context.Context, id string, event *model.Event) (*model.Event, error) {
	if _, ok := r.events[id]; !ok {
		return nil, database.ErrNotFound
	}
	event.ID = id
	r.events[id] = event
	return event, nil
}

func (r *memEventRepo) Delete(ctx context.Context, id string) error {
	delete(r.events, id)
	return nil
}

func (r *memEventRepo) CountByStatus(ctx context.Context) ([]model.StatGroup, error) {
	return r.countBy(func(e *model.Event) string { return e.Status }), nil
}

func (r *memEventRepo) CountByPriority(ctx context.Context) ([]model.StatGroup, error) {
	return r.countBy(func(e *model.Event) string { return e.Priority }), nil
}

func (r *memEventRepo) countBy(key func(*model.Event) string) []model.StatGroup {
	counts := make(map[string]int)
	for _, e := range r.events {
		counts[key(e)]++
	}
	groups := make([]model.StatGroup, 0, len(counts))
	for k, n := range counts {
		g := model.StatGroup{Count: n}
		if k != "" {
			v := k
			g.Key = &v
		}
		groups = append(groups, g)
	}
	return groups
}

type memDirectory struct {
	refs map[string]model.MemberRef
}

func (d *memDirectory) GetRefs(ctx context.Context, ids []string) (map[string]model.MemberRef, error) {
	out := make(map[string]model.MemberRef)
	for _, id := range ids {
		if ref, ok := d.refs[id]; ok {
			out[id] = ref
		}
	}
	return out, nil
}

type recordingHub struct {
	events []service.Event
}

func (h *recordingHub) Broadcast(name service.EventName, data interface{}) {
	h.events = append(h.events, service.Event{Name: name, Data: data})
}

func newEventHandler() (*EventHandler, *memEventRepo, *recordingHub) {
	repo := newMemEventRepo()
	hub := &recordingHub{}
	dir := &memDirectory{refs: map[string]model.MemberRef{
		"user:1": {ID: "user:1", Name: "Alice"},
		"user:2": {ID: "user:2", Name: "Bob"},
	}}
	svc := service.NewEventService(service.EventServiceConfig{
		EventRepo: repo,
		Members:   dir,
		Hub:       hub,
	})
	return NewEventHandler(svc), repo, hub
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, path string, body interface{}, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestEventCreate(t *testing.T) {
	h, _, hub := newEventHandler()

	rec := doJSON(t, h.Create, http.MethodPost, "/api/events", EventRequest{
		Title:       "Launch party",
		Status:      "Planned",
		Priority:    "High",
		TeamMembers: []string{"user:1", "user:2"},
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var detail model.EventDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.NotEmpty(t, detail.ID)
	assert.Equal(t, "Launch party", detail.Title)
	require.Len(t, detail.TeamMembers, 2)
	assert.Equal(t, "Alice", detail.TeamMembers[0].Name)

	require.Len(t, hub.events, 1)
	assert.Equal(t, service.EventCreated, hub.events[0].Name)
}

func TestEventCreate_MissingTitle(t *testing.T) {
	h, _, hub := newEventHandler()

	rec := doJSON(t, h.Create, http.MethodPost, "/api/events", EventRequest{Status: "Planned"}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title is required")
	assert.Empty(t, hub.events)
}

func TestEventUpdate_NotFound(t *testing.T) {
	h, _, hub := newEventHandler()

	rec := doJSON(t, h.Update, http.MethodPut, "/api/events/event:missing", EventRequest{
		Title: "Renamed",
	}, map[string]string{"id": "event:missing"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
	assert.Empty(t, hub.events)
}

func TestEventUpdate(t *testing.T) {
	h, repo, hub := newEventHandler()

	rec := doJSON(t, h.Create, http.MethodPost, "/api/events", EventRequest{Title: "Original"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.EventDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h.Update, http.MethodPut, "/api/events/"+created.ID, EventRequest{
		Title:  "Renamed",
		Status: "In Progress",
	}, map[string]string{"id": created.ID})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", repo.events[created.ID].Title)

	require.Len(t, hub.events, 2)
	assert.Equal(t, service.EventUpdated, hub.events[1].Name)
}

func TestEventDelete_Idempotent(t *testing.T) {
	h, _, hub := newEventHandler()

	rec := doJSON(t, h.Create, http.MethodPost, "/api/events", EventRequest{Title: "Doomed"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.EventDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	for i := 0; i < 2; i++ {
		rec = doJSON(t, h.Delete, http.MethodDelete, "/api/events/"+created.ID, nil,
			map[string]string{"id": created.ID})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Event deleted")
	}

	// create + two deletes
	require.Len(t, hub.events, 3)
	assert.Equal(t, service.EventDeleted, hub.events[1].Name)
	assert.Equal(t, service.EventDeleted, hub.events[2].Name)
}

func TestStatistics_EmptyStore(t *testing.T) {
	h, _, _ := newEventHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
	rec := httptest.NewRecorder()
	h.Statistics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"statusStats":[],"priorityStats":[]}`, rec.Body.String())
}

func TestStatistics(t *testing.T) {
	h, _, _ := newEventHandler()

	for _, e := range []EventRequest{
		{Title: "A", Status: "Planned", Priority: "High"},
		{Title: "B", Status: "Planned"},
	} {
		rec := doJSON(t, h.Create, http.MethodPost, "/api/events", e, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
	rec := httptest.NewRecorder()
	h.Statistics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.EventStatistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))

	require.Len(t, stats.StatusStats, 1)
	require.NotNil(t, stats.StatusStats[0].Key)
	assert.Equal(t, "Planned", *stats.StatusStats[0].Key)
	assert.Equal(t, 2, stats.StatusStats[0].Count)

	// One event has no priority; that bucket keys on null
	require.Len(t, stats.PriorityStats, 2)
	var sawNull bool
	for _, g := range stats.PriorityStats {
		if g.Key == nil {
			sawNull = true
			assert.Equal(t, 1, g.Count)
		}
	}
	assert.True(t, sawNull, "expected a null-key priority bucket")
}
