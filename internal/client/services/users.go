package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/logging"
	"github.com/dmitrijs2005/racfadmin/internal/models"
	"golang.org/x/sync/errgroup"
)

// deleteParallelism caps in-flight deletes for one DeleteMany call.
const deleteParallelism = 8

// UserService is the only entry point the CLI uses for user records.
//
// Every call probes the remote service once and then runs on exactly one
// backend. When the remote backend reports common.ErrRemoteUnavailable the
// same call is retried once on the local backend; that error never reaches
// the caller. Everything else is returned unchanged.
type UserService interface {
	List(ctx context.Context) ([]models.UserRecord, error)
	Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error)
	Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error)
	Delete(ctx context.Context, id string) error
	// DeleteMany deletes ids concurrently. Deletes that succeed stay done;
	// failures are reported per id, joined into one error.
	DeleteMany(ctx context.Context, ids []string) error
	// Status reports whether the remote service answers right now together
	// with the local seed state.
	Status(ctx context.Context) (ServiceStatus, error)
}

// ServiceStatus is a point-in-time view for the CLI status line.
type ServiceStatus struct {
	Online bool
	Seed   SeedState
}

type userService struct {
	prober Prober
	remote Backend
	local  Backend
	seeder *Seeder
	log    logging.Logger
}

func NewUserService(prober Prober, remote Backend, local *LocalBackend, log logging.Logger) UserService {
	if log == nil {
		log = logging.Nop{}
	}
	return &userService{prober: prober, remote: remote, local: local, seeder: local.seeder, log: log}
}

func (s *userService) pick(ctx context.Context, op string) Backend {
	b := s.local
	if s.prober.Available(ctx) {
		b = s.remote
	}
	s.log.Debug(ctx, "backend selected", "op", op, "backend", b.Name())
	return b
}

// run executes fn on the chosen backend and falls back to the local one
// when the remote turned out to be unreachable mid-call.
func run[T any](ctx context.Context, s *userService, op string, b Backend, fn func(Backend) (T, error)) (T, error) {
	out, err := fn(b)
	if err != nil && b != s.local && errors.Is(err, common.ErrRemoteUnavailable) {
		s.log.Warn(ctx, "remote unavailable, retrying locally", "op", op, "error", err)
		return fn(s.local)
	}
	return out, err
}

func (s *userService) List(ctx context.Context) ([]models.UserRecord, error) {
	list, err := run(ctx, s, "list", s.pick(ctx, "list"), func(b Backend) ([]models.UserRecord, error) {
		return b.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	models.SortByUserID(list)
	return list, nil
}

func (s *userService) Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error) {
	return run(ctx, s, "create", s.pick(ctx, "create"), func(b Backend) (models.UserRecord, error) {
		return b.Create(ctx, p)
	})
}

func (s *userService) Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error) {
	return run(ctx, s, "update", s.pick(ctx, "update"), func(b Backend) (models.UserRecord, error) {
		return b.Update(ctx, id, p)
	})
}

func (s *userService) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, s, "delete", s.pick(ctx, "delete"), func(b Backend) (struct{}, error) {
		return struct{}{}, b.Delete(ctx, id)
	})
	return err
}

func (s *userService) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	b := s.pick(ctx, "delete-many")

	errs := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(deleteParallelism)
	for i, id := range ids {
		g.Go(func() error {
			_, err := run(ctx, s, "delete", b, func(target Backend) (struct{}, error) {
				return struct{}{}, target.Delete(ctx, id)
			})
			if err != nil {
				errs[i] = fmt.Errorf("delete %s: %w", id, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func (s *userService) Status(ctx context.Context) (ServiceStatus, error) {
	st := ServiceStatus{Online: s.prober.Available(ctx)}
	seed, err := s.seeder.State(ctx)
	if err != nil {
		return st, err
	}
	st.Seed = seed
	return st, nil
}
