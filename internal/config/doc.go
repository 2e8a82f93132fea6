// Package config loads and validates application configuration from
// environment variables. Secrets (the token signing key and the seeded
// admin password) have no defaults and must be provided explicitly.
package config
