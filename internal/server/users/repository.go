// Package users is the server side of the user service: the repository
// contract with its PostgreSQL and in-memory implementations, and the
// Service that applies normalization and uniqueness on top of them.
package users

import (
	"context"

	"github.com/dmitrijs2005/racfadmin/internal/models"
)

// Repository persists user records. Implementations map a userid clash to
// *common.DuplicateUserError and a missing id on GetByID/Update to
// *common.NotFoundError.
type Repository interface {
	List(ctx context.Context) ([]models.UserRecord, error)
	GetByID(ctx context.Context, id string) (models.UserRecord, error)
	// FindByUserID returns nil, nil when no record has the userid.
	FindByUserID(ctx context.Context, userID string) (*models.UserRecord, error)
	Insert(ctx context.Context, rec models.UserRecord) error
	// InsertMany inserts all records or none.
	InsertMany(ctx context.Context, recs []models.UserRecord) error
	// Update replaces every mutable column of the record with rec.ID.
	Update(ctx context.Context, rec models.UserRecord) error
	// Delete succeeds whether or not the id exists.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
