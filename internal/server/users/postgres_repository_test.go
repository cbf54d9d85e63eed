package users

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userCols  = []string{"id", "userid", "name", "default_group", "owner", "status", "created_at", "auth_option", "expiration"}
	fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

const (
	qSelect = `(?s)^SELECT\s+id,\s*userid,\s*name,\s*default_group,\s*owner,\s*status,\s*created_at,\s*auth_option,\s*expiration\s+FROM\s+users`
	qInsert = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*userid,.*\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8,\s*\$9\)$`
	qUpdate = `(?s)^UPDATE\s+users\s+SET\s+userid\s*=\s*\$2,.*WHERE\s+id\s*=\s*\$1$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func sampleRecord() models.UserRecord {
	return models.UserRecord{
		ID:           "u-1",
		UserID:       "ALICE",
		Name:         "Alice",
		DefaultGroup: "STAFF",
		Owner:        "IBMUSER",
		Status:       models.StatusActive,
		CreatedAt:    fixedTime,
		AuthOption:   models.AuthPassword,
	}
}

func addRecord(rows *sqlmock.Rows, r models.UserRecord) *sqlmock.Rows {
	return rows.AddRow(r.ID, r.UserID, r.Name, r.DefaultGroup, r.Owner, string(r.Status), r.CreatedAt, string(r.AuthOption), r.Expiration)
}

func insertArgsOf(r models.UserRecord) []any {
	return []any{r.ID, r.UserID, r.Name, r.DefaultGroup, r.Owner, string(r.Status), r.CreatedAt, string(r.AuthOption), r.Expiration}
}

func asDriverArgs(args []any) []driver.Value {
	out := make([]driver.Value, len(args))
	for i, a := range args {
		out[i] = matchValue{a}
	}
	return out
}

// matchValue compares times with Equal and everything else with ==.
type matchValue struct{ v any }

func (m matchValue) Match(v driver.Value) bool {
	if t, ok := m.v.(time.Time); ok {
		got, ok := v.(time.Time)
		return ok && got.Equal(t)
	}
	return v == m.v
}

func TestList_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	a := sampleRecord()
	b := sampleRecord()
	b.ID, b.UserID, b.Expiration = "u-2", "BOB", "2030-01-01"
	mock.ExpectQuery(qSelect + `\s+ORDER\s+BY\s+userid$`).
		WillReturnRows(addRecord(addRecord(sqlmock.NewRows(userCols), a), b))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.UserRecord{a, b}, got)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qSelect).WillReturnRows(sqlmock.NewRows(userCols))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(qSelect).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		rec := sampleRecord()
		mock.ExpectQuery(qSelect + `\s+WHERE\s+id\s*=\s*\$1$`).
			WithArgs("u-1").
			WillReturnRows(addRecord(sqlmock.NewRows(userCols), rec))

		got, err := repo.GetByID(context.Background(), "u-1")
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qSelect).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "ghost")
		var nf *common.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "ghost", nf.ID)
	})
}

func TestFindByUserID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		rec := sampleRecord()
		mock.ExpectQuery(qSelect + `\s+WHERE\s+userid\s*=\s*\$1$`).
			WithArgs("ALICE").
			WillReturnRows(addRecord(sqlmock.NewRows(userCols), rec))

		got, err := repo.FindByUserID(context.Background(), "ALICE")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "u-1", got.ID)
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(qSelect).WithArgs("NOBODY").WillReturnRows(sqlmock.NewRows(userCols))

		got, err := repo.FindByUserID(context.Background(), "NOBODY")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestInsert(t *testing.T) {
	rec := sampleRecord()

	t.Run("success", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(qInsert).
			WithArgs(asDriverArgs(insertArgsOf(rec))...).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Insert(context.Background(), rec))
	})

	t.Run("userid taken", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(qInsert).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_userid_key"})

		err := repo.Insert(context.Background(), rec)
		var dup *common.DuplicateUserError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "ALICE", dup.UserID)
	})

	t.Run("id taken", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(qInsert).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

		err := repo.Insert(context.Background(), rec)
		assert.ErrorIs(t, err, common.ErrDuplicateKey)
		assert.NotErrorIs(t, err, common.ErrDuplicateUser)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(qInsert).WillReturnError(errors.New("conn reset"))

		err := repo.Insert(context.Background(), rec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error: conn reset")
	})
}

func TestInsertMany(t *testing.T) {
	recs := models.DefaultUsers(fixedTime)

	t.Run("commits", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		for _, r := range recs {
			mock.ExpectExec(qInsert).
				WithArgs(asDriverArgs(insertArgsOf(r))...).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		require.NoError(t, repo.InsertMany(context.Background(), recs))
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(qInsert).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(qInsert).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_userid_key"})
		mock.ExpectRollback()

		err := repo.InsertMany(context.Background(), recs)
		assert.ErrorIs(t, err, common.ErrDuplicateUser)
	})
}

func TestUpdate(t *testing.T) {
	rec := sampleRecord()
	rec.Name = "Alice Smith"

	t.Run("success", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(qUpdate).
			WithArgs("u-1", "ALICE", "Alice Smith", "STAFF", "IBMUSER", "Active", "1", "").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), rec))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(qUpdate).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), rec)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("userid clash", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(qUpdate).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_userid_key"})

		err := repo.Update(context.Background(), rec)
		assert.ErrorIs(t, err, common.ErrDuplicateUser)
	})
}

func TestDelete(t *testing.T) {
	t.Run("unknown id is fine", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(`(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(context.Background(), "ghost"))
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(`DELETE`).WillReturnError(errors.New("boom"))

		assert.Error(t, repo.Delete(context.Background(), "u-1"))
	})
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+users$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
