package model

import "time"

// Event represents an event record as stored. Team members are held as
// user record ids and resolved to MemberRef projections on read.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	TeamMembers []string   `json:"teamMembers"`
	CreatedOn   time.Time  `json:"createdOn"`
	UpdatedOn   time.Time  `json:"updatedOn"`
}

// EventDetail is the API projection of an event with team members
// resolved to {id, name} pairs.
type EventDetail struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status,omitempty"`
	Priority    string      `json:"priority,omitempty"`
	Location    string      `json:"location,omitempty"`
	StartTime   *time.Time  `json:"startTime,omitempty"`
	TeamMembers []MemberRef `json:"teamMembers"`
	CreatedOn   time.Time   `json:"createdOn"`
	UpdatedOn   time.Time   `json:"updatedOn"`
}

// Detail builds the resolved projection of an event. Members missing from
// the lookup are dropped rather than surfaced as dangling refs.
func (e *Event) Detail(members map[string]MemberRef) *EventDetail {
	refs := make([]MemberRef, 0, len(e.TeamMembers))
	for _, id := range e.TeamMembers {
		if ref, ok := members[id]; ok {
			refs = append(refs, ref)
		}
	}
	return &EventDetail{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Status:      e.Status,
		Priority:    e.Priority,
		Location:    e.Location,
		StartTime:   e.StartTime,
		TeamMembers: refs,
		CreatedOn:   e.CreatedOn,
		UpdatedOn:   e.UpdatedOn,
	}
}

// StatGroup is one bucket of a grouped count. Key is nil when the
// grouped field is absent on the underlying records.
type StatGroup struct {
	Key   *string `json:"key"`
	Count int     `json:"count"`
}

// EventStatistics aggregates event counts by status and priority
type EventStatistics struct {
	StatusStats   []StatGroup `json:"statusStats"`
	PriorityStats []StatGroup `json:"priorityStats"`
}
