// Package middleware provides HTTP middleware for the events API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: session token validation and caller identity extraction
//   - RateLimit: per-client token-bucket rate limiting
//   - RequestID, Logger, Recovery, CORS, Compress: cross-cutting plumbing
//
// # Authentication
//
// The auth middleware gates protected routes:
//
//	mux.Handle("GET /api/events", authMiddleware(http.HandlerFunc(eventHandler.List)))
//
// A missing credential yields 401; a credential that fails verification
// yields 403. After authentication, handlers can access the caller:
//
//	userID := middleware.GetUserID(r.Context())
//	role := middleware.GetRole(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetRole(ctx): Returns the caller's role
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
