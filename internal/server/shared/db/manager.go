// Package db owns the server's storage lifetime: it opens the backing store,
// applies migrations and hands out repositories.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/racfadmin/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	// Conn is nil for stores that are not backed by database/sql.
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
