package users

import (
	"context"

	"github.com/dmitrijs2005/racfadmin/internal/models"
)

// Repository describes the local user store.
type Repository interface {
	// List returns every record ordered by userid ascending.
	List(ctx context.Context) ([]models.UserRecord, error)

	// GetByID returns *common.NotFoundError when the id is unknown.
	GetByID(ctx context.Context, id string) (models.UserRecord, error)

	// FindByUserID matches the stored (uppercase) userid exactly and
	// returns (nil, nil) when there is no such record.
	FindByUserID(ctx context.Context, userID string) (*models.UserRecord, error)

	Insert(ctx context.Context, rec models.UserRecord) error

	// InsertMany stores all records or none.
	InsertMany(ctx context.Context, recs []models.UserRecord) error

	// Update merges the present fields of patch into the stored record and
	// returns the result.
	Update(ctx context.Context, id string, patch models.UpdateUserPayload) (models.UserRecord, error)

	// Delete succeeds whether or not the record existed.
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)
}
