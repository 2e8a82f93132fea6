// Package database provides database connectivity for the events API.
//
// The database package abstracts SurrealDB operations and provides
// a consistent interface for data access across the application.
// See database.go for the interface contract and error types, and
// transaction.go for batch transaction utilities.
package database
