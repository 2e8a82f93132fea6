package repository

import (
	"context"
	"errors"

	"github.com/idoevents/api/internal/database"
	"github.com/idoevents/api/internal/model"
)

// CommentRepository handles comment data access
type CommentRepository struct {
	db database.Database
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db database.Database) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByEvent retrieves all comments for an event, oldest first
func (r *CommentRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.Comment, error) {
	query := `SELECT * FROM comment WHERE event = $event_id ORDER BY createdOn ASC`
	vars := map[string]interface{}{"event_id": eventID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	comments := make([]*model.Comment, 0, len(records))
	for _, rec := range records {
		comment, err := parseCommentRecord(rec)
		if err != nil {
			continue
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		CREATE comment CONTENT {
			event: $event_id,
			user: $user_id,
			text: $text,
			createdOn: time::now()
		}
	`

	vars := map[string]interface{}{
		"event_id": comment.EventID,
		"user_id":  comment.UserID,
		"text":     comment.Text,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	records, ok := extractQueryResults(result)
	if !ok || len(records) == 0 {
		return errors.New("no result returned")
	}

	created, err := parseCommentRecord(records[0])
	if err != nil {
		return err
	}
	*comment = *created
	return nil
}

// parseCommentRecord maps a SurrealDB record to a model.Comment
func parseCommentRecord(result interface{}) (*model.Comment, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.Comment{
		ID:        convertSurrealID(data["id"]),
		EventID:   getString(data, "event"),
		UserID:    getString(data, "user"),
		Text:      getString(data, "text"),
		CreatedOn: getTimeOrZero(data, "createdOn"),
	}, nil
}
