package files

import (
	"context"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
)

// Repository describes the operations on File records used by the client and
// the backup engine. Implementations are typically backed by a local SQLite
// database.
type Repository interface {
	// CreateOrUpdate inserts or updates a file record for an entry.
	CreateOrUpdate(ctx context.Context, file *models.File) error

	// GetByEntryID returns the file record for a given entry ID.
	GetByEntryID(ctx context.Context, id string) (*models.File, error)

	// Count returns the number of file records.
	Count(ctx context.Context) (int64, error)

	// GetBatch returns up to limit records starting at offset, ordered by entry id.
	GetBatch(ctx context.Context, limit, offset int) ([]models.File, error)

	// Insert upserts all records.
	Insert(ctx context.Context, rows []models.File) error
}
