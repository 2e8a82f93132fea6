package model

import "time"

// Notification represents a stored notification record. The collection is
// declared for forward compatibility with client inboxes; realtime delivery
// currently goes through the SSE hub only.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedOn time.Time `json:"createdOn"`
}
