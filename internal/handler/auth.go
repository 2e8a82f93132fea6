package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/idoevents/api/internal/model"
	"github.com/idoevents/api/internal/service"
)

// AuthHandler handles registration, login, and the user directory
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest represents the register endpoint request body
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest represents the login endpoint request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUser is the caller identity returned alongside a session token
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// LoginResponse represents the login endpoint response body
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// DirectoryUser is a user entry in the directory listing
type DirectoryUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	_, err := h.authService.Register(r.Context(), service.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteMessage(w, http.StatusCreated, "User registered successfully")
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, LoginResponse{
		Token: result.Token,
		User: SessionUser{
			ID:       result.User.ID,
			Username: result.User.Username,
			Role:     string(result.User.Role),
			Name:     result.User.Name,
		},
	})
}

// ListUsers handles GET /api/users
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		slog.Error("listing users", "error", err)
		WriteError(w, model.NewInternalError("Failed to fetch users"))
		return
	}

	directory := make([]DirectoryUser, 0, len(users))
	for _, u := range users {
		directory = append(directory, DirectoryUser{
			ID:   u.ID,
			Name: u.Name,
			Role: string(u.Role),
		})
	}

	WriteJSON(w, http.StatusOK, directory)
}

func (h *AuthHandler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, model.NewBadRequestError("Invalid credentials"))
	case errors.Is(err, service.ErrUsernameTaken):
		WriteError(w, model.NewBadRequestError("Username already exists"))
	case errors.Is(err, service.ErrUsernameRequired):
		WriteError(w, model.NewBadRequestError("Username is required"))
	case errors.Is(err, service.ErrPasswordRequired):
		WriteError(w, model.NewBadRequestError("Password is required"))
	case errors.Is(err, service.ErrNameRequired):
		WriteError(w, model.NewBadRequestError("Name is required"))
	default:
		slog.Error("unhandled auth error", "error", err)
		WriteError(w, model.NewInternalError(""))
	}
}
