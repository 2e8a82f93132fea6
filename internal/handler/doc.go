// Package handler contains the HTTP layer of the events API. Handlers
// decode requests, call into the service layer, and translate service
// errors into the single {"message": ...} failure shape. Authentication
// and rate limiting live in the middleware package, not here.
package handler
