package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/idoevents/api/internal/database"
)

// captureDB records the last query issued against it.
type captureDB struct {
	query string
	vars  map[string]interface{}
}

func (c *captureDB) Connect(ctx context.Context) error { return nil }
func (c *captureDB) Close() error                      { return nil }
func (c *captureDB) Ping(ctx context.Context) error    { return nil }

func (c *captureDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	c.query = query
	c.vars = vars
	return nil, nil
}

func (c *captureDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	c.query = query
	c.vars = vars
	return nil, database.ErrNotFound
}

func (c *captureDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	c.query = query
	c.vars = vars
	return nil
}

func TestEventDelete_RemovesEventAndCommentsAtomically(t *testing.T) {
	db := &captureDB{}
	repo := NewEventRepository(db)

	if err := repo.Delete(context.Background(), "event:42"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if !strings.Contains(db.query, "BEGIN TRANSACTION;") ||
		!strings.Contains(db.query, "COMMIT TRANSACTION;") {
		t.Errorf("delete did not run inside a transaction: %q", db.query)
	}
	if !strings.Contains(db.query, "DELETE type::record(") {
		t.Errorf("delete missing the event statement: %q", db.query)
	}
	if !strings.Contains(db.query, "DELETE comment WHERE event =") {
		t.Errorf("delete missing the comment cleanup statement: %q", db.query)
	}
	if db.vars["v1_id"] != "event:42" || db.vars["v2_event_id"] != "event:42" {
		t.Errorf("vars = %v", db.vars)
	}
}
