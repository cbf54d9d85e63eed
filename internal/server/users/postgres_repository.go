package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/dbx"
	"github.com/dmitrijs2005/racfadmin/internal/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectUsers = `SELECT id, userid, name, default_group, owner, status, created_at, auth_option, expiration
		 FROM users`

const insertUser = `INSERT INTO users (id, userid, name, default_group, owner, status, created_at, auth_option, expiration)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (models.UserRecord, error) {
	var rec models.UserRecord
	err := s.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.DefaultGroup, &rec.Owner,
		&rec.Status, &rec.CreatedAt, &rec.AuthOption, &rec.Expiration)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, err
}

// writeErr turns a constraint violation into the matching domain error.
func writeErr(err error, rec models.UserRecord) error {
	if dbx.IsUniqueViolation(err) {
		if strings.Contains(dbx.ViolatedColumn(err), "userid") {
			return &common.DuplicateUserError{UserID: rec.UserID}
		}
		return fmt.Errorf("%w: id %s", common.ErrDuplicateKey, rec.ID)
	}
	return fmt.Errorf("db error: %w", err)
}

func insertArgs(rec models.UserRecord) []any {
	return []any{rec.ID, rec.UserID, rec.Name, rec.DefaultGroup, rec.Owner,
		string(rec.Status), rec.CreatedAt.UTC(), string(rec.AuthOption), rec.Expiration}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectUsers+` ORDER BY userid`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := make([]models.UserRecord, 0)
	for rows.Next() {
		rec, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (models.UserRecord, error) {
	rec, err := scanUser(r.db.QueryRowContext(ctx, selectUsers+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserRecord{}, &common.NotFoundError{ID: id}
		}
		return models.UserRecord{}, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.UserRecord, error) {
	rec, err := scanUser(r.db.QueryRowContext(ctx, selectUsers+` WHERE userid = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &rec, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, rec models.UserRecord) error {
	if _, err := r.db.ExecContext(ctx, insertUser, insertArgs(rec)...); err != nil {
		return writeErr(err, rec)
	}
	return nil
}

func (r *PostgresRepository) InsertMany(ctx context.Context, recs []models.UserRecord) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, rec := range recs {
			if _, err := tx.ExecContext(ctx, insertUser, insertArgs(rec)...); err != nil {
				return writeErr(err, rec)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) Update(ctx context.Context, rec models.UserRecord) error {
	query :=
		`UPDATE users SET userid = $2, name = $3, default_group = $4, owner = $5,
		 status = $6, auth_option = $7, expiration = $8
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, rec.ID, rec.UserID, rec.Name, rec.DefaultGroup,
		rec.Owner, string(rec.Status), string(rec.AuthOption), rec.Expiration)
	if err != nil {
		return writeErr(err, rec)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return &common.NotFoundError{ID: rec.ID}
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
