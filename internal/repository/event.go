package repository

import (
	"context"
	"errors"
	"time"

	"github.com/idoevents/api/internal/database"
	"github.com/idoevents/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// List retrieves all events
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event ORDER BY createdOn DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	events := make([]*model.Event, 0, len(records))
	for _, rec := range records {
		event, err := parseEventRecord(rec)
		if err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventRecord(result)
}

// Create creates a new event. The store assigns the record id and timestamps.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			title: $title,
			description: $description,
			status: $status,
			priority: $priority,
			location: $location,
			startTime: IF $start_time IS NOT NULL THEN <datetime> $start_time ELSE NONE END,
			teamMembers: $team_members,
			createdOn: time::now(),
			updatedOn: time::now()
		}
	`

	vars := map[string]interface{}{
		"title":        event.Title,
		"description":  event.Description,
		"status":       event.Status,
		"priority":     event.Priority,
		"location":     event.Location,
		"start_time":   timeToNone(event.StartTime),
		"team_members": event.TeamMembers,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	records, ok := extractQueryResults(result)
	if !ok || len(records) == 0 {
		return errors.New("no result returned")
	}

	created, err := parseEventRecord(records[0])
	if err != nil {
		return err
	}
	*event = *created
	return nil
}

// Update replaces the mutable fields of an event and returns the updated
// record. Returns database.ErrNotFound when the id does not exist.
func (r *EventRepository) Update(ctx context.Context, id string, event *model.Event) (*model.Event, error) {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			status = $status,
			priority = $priority,
			location = $location,
			startTime = IF $start_time IS NOT NULL THEN <datetime> $start_time ELSE NONE END,
			teamMembers = $team_members,
			updatedOn = time::now()
	`

	vars := map[string]interface{}{
		"id":           id,
		"title":        event.Title,
		"description":  event.Description,
		"status":       event.Status,
		"priority":     event.Priority,
		"location":     event.Location,
		"start_time":   timeToNone(event.StartTime),
		"team_members": event.TeamMembers,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, ok := extractQueryResults(result)
	if !ok || len(records) == 0 {
		return nil, database.ErrNotFound
	}

	return parseEventRecord(records[0])
}

// Delete removes an event and its comments atomically. Deleting an id
// that does not exist is a no-op.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	batch := database.NewAtomicBatch().
		Add(`DELETE type::record($id)`, map[string]interface{}{"id": id}).
		Add(`DELETE comment WHERE event = $event_id`, map[string]interface{}{"event_id": id})
	return batch.Execute(ctx, r.db)
}

// CountByStatus returns event counts grouped by status
func (r *EventRepository) CountByStatus(ctx context.Context) ([]model.StatGroup, error) {
	return r.countByField(ctx, `SELECT status AS key, count() AS count FROM event GROUP BY status`)
}

// CountByPriority returns event counts grouped by priority
func (r *EventRepository) CountByPriority(ctx context.Context) ([]model.StatGroup, error) {
	return r.countByField(ctx, `SELECT priority AS key, count() AS count FROM event GROUP BY priority`)
}

func (r *EventRepository) countByField(ctx context.Context, query string) ([]model.StatGroup, error) {
	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	groups := make([]model.StatGroup, 0, len(records))
	for _, rec := range records {
		data, ok := rec.(map[string]interface{})
		if !ok {
			continue
		}
		group := model.StatGroup{Count: getInt(data, "count")}
		// Records without the grouped field bucket under a null key
		if key, ok := data["key"].(string); ok && key != "" {
			group.Key = &key
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// parseEventRecord maps a SurrealDB record to a model.Event
func parseEventRecord(result interface{}) (*model.Event, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.Event{
		ID:          convertSurrealID(data["id"]),
		Title:       getString(data, "title"),
		Description: getString(data, "description"),
		Status:      getString(data, "status"),
		Priority:    getString(data, "priority"),
		Location:    getString(data, "location"),
		StartTime:   getTime(data, "startTime"),
		TeamMembers: getStringSlice(data, "teamMembers"),
		CreatedOn:   getTimeOrZero(data, "createdOn"),
		UpdatedOn:   getTimeOrZero(data, "updatedOn"),
	}, nil
}

// timeToNone converts an optional time to a query parameter value
func timeToNone(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
