package entries

import (
	"context"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
)

// Repository describes the operations on Entry rows needed by the client and
// by the backup engine. Implementations are typically backed by a local
// SQLite database.
type Repository interface {
	// CreateOrUpdate inserts a new entry or updates an existing one by Id.
	CreateOrUpdate(ctx context.Context, entry *models.Entry) error

	// GetByID returns the full row for an identifier, tombstones included.
	GetByID(ctx context.Context, id string) (*models.Entry, error)

	// Count returns the number of rows in the table.
	Count(ctx context.Context) (int64, error)

	// GetBatch returns up to limit rows starting at offset, ordered by id.
	GetBatch(ctx context.Context, limit, offset int) ([]models.Entry, error)

	// Insert upserts all rows. Callers wanting all-or-nothing semantics run
	// it on a transactional DBTX.
	Insert(ctx context.Context, rows []models.Entry) error
}
