package service

import (
	"context"
	"strings"

	"github.com/idoevents/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor
const bcryptCost = 10

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

// TokenSigner issues signed session tokens
type TokenSigner interface {
	Sign(userID, role string) (string, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo UserRepository
	tokens   TokenSigner
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo UserRepository
	Tokens   TokenSigner
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo: cfg.UserRepo,
		tokens:   cfg.Tokens,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string
	Password string
	Name     string
	Role     string
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	// Roles are free-form labels; an absent role means ordinary member
	role := model.UserRoleMember
	if req.Role != "" {
		role = model.UserRole(req.Role)
	}

	// Check if username already exists
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Hash:     &hash,
		Name:     name,
		Role:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string
	Password string
}

// LoginResult represents a successful login
type LoginResult struct {
	Token string
	User  *model.User
}

// Login authenticates a user and issues a session token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Hash == nil {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(*user.Hash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

// ListUsers returns all user accounts
func (s *AuthService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword verifies a password against a bcrypt hash
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
