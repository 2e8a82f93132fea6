package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/idoevents/api/internal/database"
	"github.com/idoevents/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	role := user.Role
	if role == "" {
		role = model.UserRoleMember
	}

	query := `
		CREATE user CONTENT {
			username: $username,
			hash: $hash,
			name: $name,
			role: $role,
			createdOn: time::now(),
			updatedOn: time::now()
		}
	`

	hash := ""
	if user.Hash != nil {
		hash = *user.Hash
	}

	vars := map[string]interface{}{
		"username": user.Username,
		"hash":     hash,
		"name":     user.Name,
		"role":     string(role),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: username already exists", database.ErrDuplicate)
		}
		return err
	}

	created, ok := extractQueryResults(result)
	if !ok || len(created) == 0 {
		return errors.New("no result returned")
	}

	data, ok := created[0].(map[string]interface{})
	if !ok {
		return errors.New("unexpected result format")
	}

	user.ID = convertSurrealID(data["id"])
	user.Role = role
	user.CreatedOn = getTimeOrZero(data, "createdOn")
	user.UpdatedOn = getTimeOrZero(data, "updatedOn")
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// List retrieves all users ordered by name
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT * FROM user ORDER BY name ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	users := make([]*model.User, 0, len(records))
	for _, rec := range records {
		user, err := parseUserRecord(rec)
		if err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// GetRefs resolves user record ids to {id, name} projections.
// Unknown ids are simply absent from the returned map.
func (r *UserRepository) GetRefs(ctx context.Context, ids []string) (map[string]model.MemberRef, error) {
	refs := make(map[string]model.MemberRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	query := `SELECT id, name FROM user WHERE $ids CONTAINS type::string(id)`
	vars := map[string]interface{}{"ids": ids}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	for _, rec := range records {
		data, ok := rec.(map[string]interface{})
		if !ok {
			continue
		}
		id := convertSurrealID(data["id"])
		refs[id] = model.MemberRef{ID: id, Name: getString(data, "name")}
	}
	return refs, nil
}

// parseUserRecord maps a SurrealDB record to a model.User
func parseUserRecord(result interface{}) (*model.User, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	// Handle array wrapper
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

	user := &model.User{
		ID:        convertSurrealID(data["id"]),
		Username:  getString(data, "username"),
		Name:      getString(data, "name"),
		Role:      model.UserRole(getString(data, "role")),
		CreatedOn: getTimeOrZero(data, "createdOn"),
		UpdatedOn: getTimeOrZero(data, "updatedOn"),
	}

	if h, ok := data["hash"].(string); ok && h != "" {
		user.Hash = &h
	}

	return user, nil
}
