package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/racfadmin/internal/client/client"
	"github.com/dmitrijs2005/racfadmin/internal/client/repositories/users"
	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/models"
	"github.com/google/uuid"
)

// Backend is one place user records can live. UserService picks exactly one
// per call.
type Backend interface {
	Name() string
	List(ctx context.Context) ([]models.UserRecord, error)
	Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error)
	Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error)
	Delete(ctx context.Context, id string) error
}

// RemoteBackend forwards calls to the remote service as they are. The
// service owns its own validation and uniqueness rules.
type RemoteBackend struct {
	client client.Client
}

func NewRemoteBackend(c client.Client) *RemoteBackend {
	return &RemoteBackend{client: c}
}

func (b *RemoteBackend) Name() string { return "remote" }

func (b *RemoteBackend) List(ctx context.Context) ([]models.UserRecord, error) {
	return b.client.List(ctx)
}

func (b *RemoteBackend) Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error) {
	return b.client.Create(ctx, p)
}

func (b *RemoteBackend) Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error) {
	return b.client.Update(ctx, id, p)
}

func (b *RemoteBackend) Delete(ctx context.Context, id string) error {
	return b.client.Delete(ctx, id)
}

// LocalBackend serves calls from the SQLite store. It seeds first and then
// applies the same normalization the remote service does.
type LocalBackend struct {
	users  users.Repository
	seeder *Seeder
	now    func() time.Time
	newID  func() string
}

func NewLocalBackend(u users.Repository, seeder *Seeder) *LocalBackend {
	return &LocalBackend{users: u, seeder: seeder, now: time.Now, newID: uuid.NewString}
}

func (b *LocalBackend) Name() string { return "local" }

func (b *LocalBackend) List(ctx context.Context) ([]models.UserRecord, error) {
	if err := b.seeder.Ensure(ctx); err != nil {
		return nil, err
	}
	return b.users.List(ctx)
}

func (b *LocalBackend) Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error) {
	if err := b.seeder.Ensure(ctx); err != nil {
		return models.UserRecord{}, err
	}

	n, err := models.NormalizeCreate(p)
	if err != nil {
		return models.UserRecord{}, err
	}

	existing, err := b.users.FindByUserID(ctx, n.UserID)
	if err != nil {
		return models.UserRecord{}, err
	}
	if existing != nil {
		return models.UserRecord{}, &common.DuplicateUserError{UserID: n.UserID}
	}

	rec := models.UserRecord{
		ID:           b.newID(),
		UserID:       n.UserID,
		Name:         n.Name,
		DefaultGroup: n.DefaultGroup,
		Owner:        n.Owner,
		Status:       n.Status,
		CreatedAt:    b.now().UTC(),
		AuthOption:   n.AuthOption,
		Expiration:   n.Expiration,
	}
	if err := b.users.Insert(ctx, rec); err != nil {
		return models.UserRecord{}, err
	}
	return rec, nil
}

func (b *LocalBackend) Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error) {
	if err := b.seeder.Ensure(ctx); err != nil {
		return models.UserRecord{}, err
	}

	n, err := models.NormalizeUpdate(p)
	if err != nil {
		return models.UserRecord{}, err
	}

	current, err := b.users.GetByID(ctx, id)
	if err != nil {
		return models.UserRecord{}, err
	}

	if n.UserID.Set && n.UserID.Value != current.UserID {
		other, err := b.users.FindByUserID(ctx, n.UserID.Value)
		if err != nil {
			return models.UserRecord{}, err
		}
		if other != nil && other.ID != id {
			return models.UserRecord{}, &common.DuplicateUserError{UserID: n.UserID.Value}
		}
	}

	return b.users.Update(ctx, id, n)
}

func (b *LocalBackend) Delete(ctx context.Context, id string) error {
	if err := b.seeder.Ensure(ctx); err != nil {
		return err
	}
	return b.users.Delete(ctx, id)
}
