package service

import (
	"context"
	"errors"
	"time"

	"github.com/idoevents/api/internal/database"
	"github.com/idoevents/api/internal/model"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	List(ctx context.Context) ([]*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, id string, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) ([]model.StatGroup, error)
	CountByPriority(ctx context.Context) ([]model.StatGroup, error)
}

// MemberDirectory resolves user record ids to {id, name} projections
type MemberDirectory interface {
	GetRefs(ctx context.Context, ids []string) (map[string]model.MemberRef, error)
}

// Broadcaster fans events out to connected sessions
type Broadcaster interface {
	Broadcast(name EventName, data interface{})
}

// EventService handles event operations
type EventService struct {
	eventRepo EventRepository
	members   MemberDirectory
	hub       Broadcaster
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo EventRepository
	Members   MemberDirectory
	Hub       Broadcaster
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo: cfg.EventRepo,
		members:   cfg.Members,
		hub:       cfg.Hub,
	}
}

// EventRequest carries the mutable fields of an event for create and update
type EventRequest struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Location    string
	StartTime   *time.Time
	TeamMembers []string
}

// List returns all events with team members resolved
func (s *EventService) List(ctx context.Context) ([]*model.EventDetail, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// Resolve every referenced member in one lookup
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, event := range events {
		for _, id := range event.TeamMembers {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	refs, err := s.members.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*model.EventDetail, 0, len(events))
	for _, event := range events {
		details = append(details, event.Detail(refs))
	}
	return details, nil
}

// Create persists a new event and announces it to connected sessions
func (s *EventService) Create(ctx context.Context, req EventRequest) (*model.EventDetail, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Location:    req.Location,
		StartTime:   req.StartTime,
		TeamMembers: normalizeMembers(req.TeamMembers),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	detail, err := s.resolve(ctx, event)
	if err != nil {
		return nil, err
	}

	// Announce only after the store has acknowledged the write
	s.hub.Broadcast(EventCreated, detail)
	return detail, nil
}

// Update replaces the mutable fields of an event
func (s *EventService) Update(ctx context.Context, id string, req EventRequest) (*model.EventDetail, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Location:    req.Location,
		StartTime:   req.StartTime,
		TeamMembers: normalizeMembers(req.TeamMembers),
	}

	updated, err := s.eventRepo.Update(ctx, id, event)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	detail, err := s.resolve(ctx, updated)
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(EventUpdated, detail)
	return detail, nil
}

// Delete removes an event. Deleting an unknown id succeeds, so retries
// and races observe the same outcome.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Broadcast(EventDeleted, map[string]string{"id": id})
	return nil
}

// Statistics returns event counts grouped by status and by priority
func (s *EventService) Statistics(ctx context.Context) (*model.EventStatistics, error) {
	statusStats, err := s.eventRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	priorityStats, err := s.eventRepo.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}

	// Empty groups serialize as [] rather than null
	if statusStats == nil {
		statusStats = []model.StatGroup{}
	}
	if priorityStats == nil {
		priorityStats = []model.StatGroup{}
	}

	return &model.EventStatistics{
		StatusStats:   statusStats,
		PriorityStats: priorityStats,
	}, nil
}

// resolve builds the member-resolved projection of an event
func (s *EventService) resolve(ctx context.Context, event *model.Event) (*model.EventDetail, error) {
	refs, err := s.members.GetRefs(ctx, event.TeamMembers)
	if err != nil {
		return nil, err
	}
	return event.Detail(refs), nil
}

// normalizeMembers drops empty ids and keeps the caller's ordering
func normalizeMembers(ids []string) []string {
	members := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			members = append(members, id)
		}
	}
	return members
}
