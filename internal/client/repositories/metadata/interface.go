package metadata

import (
	"context"
)

// Repository is a small key/value namespace kept apart from the user
// records, so clearing one never clears the other.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	GetFlag(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, on bool) error
}
