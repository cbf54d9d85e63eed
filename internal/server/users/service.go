package users

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/logging"
	"github.com/dmitrijs2005/racfadmin/internal/models"
	"github.com/google/uuid"
)

// Service is the authoritative user store behind the HTTP API.
type Service struct {
	repo  Repository
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log.With("module", "users"), now: time.Now, newID: uuid.NewString}
}

func (s *Service) List(ctx context.Context) ([]models.UserRecord, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	models.SortByUserID(users)
	return users, nil
}

func (s *Service) Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error) {
	n, err := models.NormalizeCreate(p)
	if err != nil {
		return models.UserRecord{}, err
	}

	existing, err := s.repo.FindByUserID(ctx, n.UserID)
	if err != nil {
		return models.UserRecord{}, err
	}
	if existing != nil {
		return models.UserRecord{}, &common.DuplicateUserError{UserID: n.UserID}
	}

	rec := models.UserRecord{
		ID:           s.newID(),
		UserID:       n.UserID,
		Name:         n.Name,
		DefaultGroup: n.DefaultGroup,
		Owner:        n.Owner,
		Status:       n.Status,
		CreatedAt:    s.now().UTC(),
		AuthOption:   n.AuthOption,
		Expiration:   n.Expiration,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return models.UserRecord{}, err
	}
	s.log.Info(ctx, "user created", "id", rec.ID, "userid", rec.UserID)
	return rec, nil
}

func (s *Service) Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error) {
	n, err := models.NormalizeUpdate(p)
	if err != nil {
		return models.UserRecord{}, err
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.UserRecord{}, err
	}

	if n.UserID.Set && n.UserID.Value != rec.UserID {
		other, err := s.repo.FindByUserID(ctx, n.UserID.Value)
		if err != nil {
			return models.UserRecord{}, err
		}
		if other != nil && other.ID != id {
			return models.UserRecord{}, &common.DuplicateUserError{UserID: n.UserID.Value}
		}
	}

	n.Apply(&rec)
	if err := s.repo.Update(ctx, rec); err != nil {
		return models.UserRecord{}, err
	}
	s.log.Info(ctx, "user updated", "id", rec.ID, "userid", rec.UserID)
	return rec, nil
}

// Delete removes the record; an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "user deleted", "id", id)
	return nil
}

// SeedDefaults inserts the sample users when the store is empty and returns
// how many were added. Losing a seeding race to another instance is not an
// error.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	defaults := models.DefaultUsers(s.now())
	if err := s.repo.InsertMany(ctx, defaults); err != nil {
		var dup *common.DuplicateUserError
		if errors.As(err, &dup) || errors.Is(err, common.ErrDuplicateKey) {
			s.log.Warn(ctx, "default users already present", "error", err)
			return 0, nil
		}
		return 0, err
	}
	s.log.Info(ctx, "default users seeded", "count", len(defaults))
	return len(defaults), nil
}
