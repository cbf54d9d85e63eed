package client

import (
	"context"

	"github.com/dmitrijs2005/racfadmin/internal/models"
)

// Client is the remote user service contract. Implementations return
// common.ErrRemoteUnavailable when the service could not be reached or
// answered with something unreadable, and *common.RemoteRequestError when
// it answered with a non-success status.
type Client interface {
	Health(ctx context.Context) error
	List(ctx context.Context) ([]models.UserRecord, error)
	Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error)
	Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error)
	Delete(ctx context.Context, id string) error
}
