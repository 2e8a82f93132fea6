// Package model defines domain entities and data structures for the events API.
//
// The model package contains all struct definitions for domain objects,
// API projections, and error definitions. Models are used across all layers
// of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Application user with authentication credentials and a role
//   - Event: A managed event with status, priority and assigned team members
//   - Comment: Discussion entry attached to an event
//   - Notification: Reserved collection for client inboxes
//
// # Projections
//
// Stored records reference users by record id. The API surface exposes
// resolved projections instead:
//
//   - EventDetail: Event with teamMembers resolved to {id, name} pairs
//   - CommentDetail: Comment with the author resolved to an {id, name} pair
//
// # JSON Serialization
//
// All models use camelCase json struct tags for API serialization:
//
//	type Event struct {
//	    ID          string   `json:"id"`
//	    Title       string   `json:"title"`
//	    TeamMembers []string `json:"teamMembers"`
//	}
//
// # Error Types
//
// Failure responses share a single wire shape, defined in errors.go:
//
//	type APIError struct {
//	    Status  int    `json:"-"`
//	    Message string `json:"message"`
//	}
package model
