package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/idoevents/api/internal/model"
)

// mockUserRepo is an in-memory UserRepository
type mockUserRepo struct {
	users     map[string]*model.User // keyed by username
	createErr error
	nextID    int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	user.ID = fmt.Sprintf("user:%d", m.nextID)
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

// mockSigner records the identity it signed
type mockSigner struct {
	signedUserID string
	signedRole   string
	err          error
}

func (m *mockSigner) Sign(userID, role string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.signedUserID = userID
	m.signedRole = role
	return "signed-token", nil
}

func newTestAuthService() (*AuthService, *mockUserRepo, *mockSigner) {
	repo := newMockUserRepo()
	signer := &mockSigner{}
	svc := NewAuthService(AuthServiceConfig{UserRepo: repo, Tokens: signer})
	return svc, repo, signer
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{
			name: "valid registration",
			req:  RegisterRequest{Username: "alice", Password: "s3cret", Name: "Alice"},
		},
		{
			name:    "missing username",
			req:     RegisterRequest{Password: "s3cret", Name: "Alice"},
			wantErr: ErrUsernameRequired,
		},
		{
			name:    "missing password",
			req:     RegisterRequest{Username: "alice", Name: "Alice"},
			wantErr: ErrPasswordRequired,
		},
		{
			name:    "missing name",
			req:     RegisterRequest{Username: "alice", Password: "s3cret"},
			wantErr: ErrNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuthService()
			user, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if user.ID == "" {
				t.Error("registered user has no id")
			}
			if user.Role != model.UserRoleMember {
				t.Errorf("default role = %q, want %q", user.Role, model.UserRoleMember)
			}
			if user.Hash == nil || *user.Hash == tt.req.Password {
				t.Error("password stored without hashing")
			}
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret", Name: "Alice"}); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "other", Name: "Other Alice"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("second Register() error = %v, want ErrUsernameTaken", err)
	}
}

func TestRegister_ExplicitAdminRole(t *testing.T) {
	svc, _, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "root", Password: "s3cret", Name: "Root", Role: string(model.UserRoleAdmin),
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Role != model.UserRoleAdmin {
		t.Errorf("role = %q, want %q", user.Role, model.UserRoleAdmin)
	}
}

func TestRegister_CustomRole(t *testing.T) {
	svc, _, _ := newTestAuthService()

	// Roles are free-form labels, not a closed set
	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "mia", Password: "s3cret", Name: "Mia", Role: "Manager",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Role != model.UserRole("Manager") {
		t.Errorf("role = %q, want Manager", user.Role)
	}
}

func TestLogin(t *testing.T) {
	svc, _, signer := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret", Name: "Alice"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if result.Token != "signed-token" {
		t.Errorf("token = %q, want %q", result.Token, "signed-token")
	}
	if result.User.ID != registered.ID {
		t.Errorf("user id = %q, want %q", result.User.ID, registered.ID)
	}
	// The signed token must carry the caller's identity and role
	if signer.signedUserID != registered.ID {
		t.Errorf("signed user id = %q, want %q", signer.signedUserID, registered.ID)
	}
	if signer.signedRole != string(model.UserRoleMember) {
		t.Errorf("signed role = %q, want %q", signer.signedRole, model.UserRoleMember)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret", Name: "Alice"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Username: "alice", Password: "wrong"}},
		{"unknown user", LoginRequest{Username: "nobody", Password: "s3cret"}},
		{"empty password", LoginRequest{Username: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	ctx := context.Background()

	seed := AdminSeed{Username: "admin", Password: "seeded-password", Name: "Administrator"}

	if err := svc.EnsureDefaultAdmin(ctx, seed); err != nil {
		t.Fatalf("EnsureDefaultAdmin() error = %v", err)
	}

	admin, _ := repo.GetByUsername(ctx, "admin")
	if admin == nil {
		t.Fatal("admin account was not created")
	}
	if admin.Role != model.UserRoleAdmin {
		t.Errorf("admin role = %q, want %q", admin.Role, model.UserRoleAdmin)
	}

	// Second run is a no-op and must not replace the account
	firstID := admin.ID
	if err := svc.EnsureDefaultAdmin(ctx, seed); err != nil {
		t.Fatalf("second EnsureDefaultAdmin() error = %v", err)
	}
	again, _ := repo.GetByUsername(ctx, "admin")
	if again.ID != firstID {
		t.Error("second run replaced the existing admin account")
	}

	// The seeded credential must work through the normal login path
	if _, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "seeded-password"}); err != nil {
		t.Errorf("Login() with seeded credentials error = %v", err)
	}
}
