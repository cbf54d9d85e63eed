package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/racfadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/racfadmin/internal/client/repositories/users"
	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/logging"
	"github.com/dmitrijs2005/racfadmin/internal/models"
)

// SeedFlagKey is the metadata key holding the durable "seeded" flag.
const SeedFlagKey = "users_seeded_v1"

// SeedState is what the seed decision is made from.
type SeedState struct {
	HasEverSeeded bool
	StoreEmpty    bool
}

// ShouldSeed is true only for a store that was never seeded and is empty now.
func (s SeedState) ShouldSeed() bool {
	return !s.HasEverSeeded && s.StoreEmpty
}

// Seeder puts the default users into the local store once per client
// lifetime. Calls are serialized; after the first attempt in a process the
// seeder stays quiet even if the durable flag could not be written.
type Seeder struct {
	users users.Repository
	meta  metadata.Repository
	log   logging.Logger
	now   func() time.Time

	mu        sync.Mutex
	attempted bool
}

func NewSeeder(u users.Repository, m metadata.Repository, log logging.Logger) *Seeder {
	if log == nil {
		log = logging.Nop{}
	}
	return &Seeder{users: u, meta: m, log: log, now: time.Now}
}

// State reads the durable flag and the current store size.
func (s *Seeder) State(ctx context.Context) (SeedState, error) {
	seeded, err := s.meta.GetFlag(ctx, SeedFlagKey)
	if err != nil {
		return SeedState{}, &common.StorageError{Op: "read seed flag", Err: err}
	}
	n, err := s.users.Count(ctx)
	if err != nil {
		return SeedState{}, err
	}
	return SeedState{HasEverSeeded: seeded, StoreEmpty: n == 0}, nil
}

// Ensure seeds the store if it has never been seeded and is empty.
func (s *Seeder) Ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempted {
		return nil
	}

	state, err := s.State(ctx)
	if err != nil {
		return err
	}
	if !state.ShouldSeed() {
		s.attempted = true
		if !state.HasEverSeeded {
			// A store that already holds records never gets the defaults, even
			// after it is emptied later.
			s.persistFlag(ctx)
		}
		return nil
	}

	defaults := models.DefaultUsers(s.now())
	if err := s.users.InsertMany(ctx, defaults); err != nil {
		if !errors.Is(err, common.ErrDuplicateKey) && !errors.Is(err, common.ErrDuplicateUser) {
			return err
		}
		s.log.Warn(ctx, "default users already present", "error", err)
	} else {
		s.log.Info(ctx, "seeded default users", "count", len(defaults))
	}
	s.attempted = true
	s.persistFlag(ctx)
	return nil
}

func (s *Seeder) persistFlag(ctx context.Context) {
	if err := s.meta.SetFlag(ctx, SeedFlagKey, true); err != nil {
		s.log.Warn(ctx, "failed to persist seed flag", "error", err)
	}
}
