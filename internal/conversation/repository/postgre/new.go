package postgre

import (
	"database/sql"
	"fmt"

	"restaurant-voice-agent/internal/conversation/repository"
	"restaurant-voice-agent/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// Repository is the combined persistence surface backed by one database.
type Repository interface {
	repository.CallRepository
	repository.OrderRepository
}

// New creates a PostgreSQL-backed repository for calls and orders.
func New(db *sql.DB, l log.Logger) Repository {
	if db == nil {
		panic("conversation/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("conversation/repository/postgre.%s", method)
}
