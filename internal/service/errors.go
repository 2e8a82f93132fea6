package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNameRequired       = errors.New("name is required")
)

// ===== Event Errors =====
var (
	ErrEventNotFound = errors.New("event not found")
	ErrTitleRequired = errors.New("title is required")
)

// ===== Comment Errors =====
var (
	ErrCommentTextRequired = errors.New("comment text is required")
)
