package metadata

import (
	"context"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
)

// Repository stores small key/value settings of the local client (session
// identity, offline-login salt and verifier).
type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	Count(ctx context.Context) (int64, error)
	GetBatch(ctx context.Context, limit, offset int) ([]models.MetadataItem, error)
	Insert(ctx context.Context, rows []models.MetadataItem) error
}
