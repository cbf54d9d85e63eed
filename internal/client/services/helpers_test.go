package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/racfadmin/internal/client/client"
	"github.com/dmitrijs2005/racfadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/racfadmin/internal/client/repositories/users"
	"github.com/dmitrijs2005/racfadmin/internal/models"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

type localFixture struct {
	users  *users.SQLiteRepository
	meta   *metadata.SQLiteRepository
	seeder *Seeder
	local  *LocalBackend
}

func newLocalFixture(t *testing.T) *localFixture {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &localFixture{
		users: users.NewSQLiteRepository(db),
		meta:  metadata.NewSQLiteRepository(db),
	}
	f.seeder = NewSeeder(f.users, f.meta, nil)
	f.seeder.now = func() time.Time { return fixedNow }

	var n atomic.Int64
	f.local = NewLocalBackend(f.users, f.seeder)
	f.local.now = func() time.Time { return fixedNow }
	f.local.newID = func() string { return fmt.Sprintf("local-%d", n.Add(1)) }
	return f
}

// markSeeded sets the durable flag so tests start from an empty store.
func (f *localFixture) markSeeded(t *testing.T) {
	t.Helper()
	require.NoError(t, f.meta.SetFlag(context.Background(), SeedFlagKey, true))
}

type fakeClient struct {
	client.Client

	mu         sync.Mutex
	calls      []string
	health     error
	list       []models.UserRecord
	listErr    error
	created    models.UserRecord
	create     error
	updated    models.UserRecord
	update     error
	delete     func(id string) error
	lastCreate models.CreateUserPayload
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Health(context.Context) error {
	f.record("health")
	return f.health
}

func (f *fakeClient) List(context.Context) ([]models.UserRecord, error) {
	f.record("list")
	return f.list, f.listErr
}

func (f *fakeClient) Create(_ context.Context, p models.CreateUserPayload) (models.UserRecord, error) {
	f.record("create")
	f.lastCreate = p
	return f.created, f.create
}

func (f *fakeClient) Update(context.Context, string, models.UpdateUserPayload) (models.UserRecord, error) {
	f.record("update")
	return f.updated, f.update
}

func (f *fakeClient) Delete(_ context.Context, id string) error {
	f.record("delete")
	if f.delete != nil {
		return f.delete(id)
	}
	return nil
}

type staticProber bool

func (p staticProber) Available(context.Context) bool { return bool(p) }

func testRecord(id, userID string) models.UserRecord {
	return models.UserRecord{
		ID:           id,
		UserID:       userID,
		Name:         "Name " + userID,
		DefaultGroup: "STAFF",
		Owner:        "IBMUSER",
		Status:       models.StatusActive,
		CreatedAt:    fixedNow,
		AuthOption:   models.AuthPassword,
	}
}
