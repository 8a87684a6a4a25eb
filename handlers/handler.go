package handlers

import "database/sql"

// Handler serves the HTTP API. The database handle is injected at
// construction so tests can run against an in-memory store.
type Handler struct {
	db        *sql.DB
	jwtSecret string
}

// New creates a new API handler
func New(db *sql.DB, jwtSecret string) *Handler {
	return &Handler{
		db:        db,
		jwtSecret: jwtSecret,
	}
}
