package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the wire shape for every failure response: a status code
// and a single human-readable message.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewBadRequestError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: message}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewMethodNotAllowedError(allowed string) *APIError {
	return &APIError{Status: http.StatusMethodNotAllowed, Message: fmt.Sprintf("Only %s method is allowed", allowed)}
}

func NewRateLimitError(retryAfter int) *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter),
	}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}
