package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/dbx"
	"github.com/dmitrijs2005/racfadmin/internal/models"
)

const userColumns = `id, userid, name, default_group, owner, status, created_at, auth_option, expiration`

// SQLiteRepository implements Repository on the client database. It needs a
// *sql.DB rather than a dbx.DBTX because it opens its own transactions.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

var _ Repository = (*SQLiteRepository)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (models.UserRecord, error) {
	var (
		rec       models.UserRecord
		status    string
		createdAt string
		auth      string
	)
	if err := s.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.DefaultGroup, &rec.Owner,
		&status, &createdAt, &auth, &rec.Expiration); err != nil {
		return models.UserRecord{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	rec.Status = models.Status(status)
	rec.AuthOption = models.AuthOption(auth)
	rec.CreatedAt = t
	return rec, nil
}

func storageErr(op string, err error) error {
	return &common.StorageError{Op: op, Err: err}
}

// mapWriteErr turns a constraint violation into the matching domain error.
func mapWriteErr(op string, rec models.UserRecord, err error) error {
	if dbx.IsUniqueViolation(err) {
		if strings.HasSuffix(dbx.ViolatedColumn(err), ".userid") {
			return &common.DuplicateUserError{UserID: rec.UserID}
		}
		return fmt.Errorf("%w: user id %s", common.ErrDuplicateKey, rec.ID)
	}
	return storageErr(op, err)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY userid ASC`)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()

	result := []models.UserRecord{}
	for rows.Next() {
		rec, err := scanUser(rows)
		if err != nil {
			return nil, storageErr("scan user", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate users", err)
	}
	return result, nil
}

func getByID(ctx context.Context, db dbx.DBTX, id string) (models.UserRecord, error) {
	row := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	rec, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserRecord{}, &common.NotFoundError{ID: id}
	}
	if err != nil {
		return models.UserRecord{}, storageErr("get user", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (models.UserRecord, error) {
	return getByID(ctx, r.db, id)
}

func (r *SQLiteRepository) FindByUserID(ctx context.Context, userID string) (*models.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE userid = ?`, userID)
	rec, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}
	return &rec, nil
}

func insert(ctx context.Context, db dbx.DBTX, rec models.UserRecord) error {
	_, err := db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Name, rec.DefaultGroup, rec.Owner, string(rec.Status),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano), string(rec.AuthOption), rec.Expiration)
	if err != nil {
		return mapWriteErr("insert user", rec, err)
	}
	return nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec models.UserRecord) error {
	return insert(ctx, r.db, rec)
}

func (r *SQLiteRepository) InsertMany(ctx context.Context, recs []models.UserRecord) error {
	if len(recs) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, rec := range recs {
			if err := insert(ctx, tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	return classify("insert users", err)
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, patch models.UpdateUserPayload) (models.UserRecord, error) {
	var updated models.UserRecord
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := getByID(ctx, tx, id)
		if err != nil {
			return err
		}
		patch.Apply(&rec)

		_, err = tx.ExecContext(ctx, `
			UPDATE users SET userid = ?, name = ?, default_group = ?, owner = ?,
				status = ?, auth_option = ?, expiration = ?
			WHERE id = ?`,
			rec.UserID, rec.Name, rec.DefaultGroup, rec.Owner,
			string(rec.Status), string(rec.AuthOption), rec.Expiration, id)
		if err != nil {
			return mapWriteErr("update user", rec, err)
		}
		updated = rec
		return nil
	})
	if err != nil {
		return models.UserRecord{}, classify("update user", err)
	}
	return updated, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return storageErr("delete user", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, storageErr("count users", err)
	}
	return n, nil
}

// classify passes domain errors through and wraps transaction-level failures
// (begin, commit) that did not already come back typed.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		nf  *common.NotFoundError
		dup *common.DuplicateUserError
		se  *common.StorageError
	)
	switch {
	case errors.As(err, &nf), errors.As(err, &dup), errors.As(err, &se), errors.Is(err, common.ErrDuplicateKey):
		return err
	}
	return storageErr(op, err)
}
