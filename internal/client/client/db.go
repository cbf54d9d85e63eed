package client

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/racfadmin/internal/client/migrations"
	"github.com/dmitrijs2005/racfadmin/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const memoryDSN = ":memory:"

var (
	gooseOnce sync.Once
	gooseErr  error
)

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrations.Migrations)
		goose.SetLogger(goose.NopLogger())
		if err := goose.SetDialect("sqlite3"); err != nil {
			gooseErr = fmt.Errorf("failed to set goose dialect: %w", err)
		}
	})
	if gooseErr != nil {
		return gooseErr
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the local SQLite store at path and brings
// its schema up to date. The pool is pinned to one connection so ":memory:"
// databases survive between calls and writers never contend.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if path != memoryDSN {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}
