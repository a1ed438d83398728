package entries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
)

const entryColumns = `id, version, deleted, overview, nonce_overview, details, nonce_details, updated_at, is_file, pending`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateOrUpdate upserts an entry by id. On conflict, every column is replaced.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, e *models.Entry) error {
	query := `INSERT INTO entries (` + entryColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET version = excluded.version,
				deleted = excluded.deleted,
				overview = excluded.overview,
				nonce_overview = excluded.nonce_overview,
				details = excluded.details,
				nonce_details = excluded.nonce_details,
				updated_at = excluded.updated_at,
				is_file = excluded.is_file,
				pending = excluded.pending
	`
	_, err := r.db.ExecContext(ctx, query,
		e.Id, e.Version, e.Deleted, e.Overview, e.NonceOverview, e.Details, e.NonceDetails,
		e.UpdatedAt, e.IsFile, e.Pending)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// GetByID returns a single entry including tombstones.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e := &models.Entry{}
	if err := row.Scan(&e.Id, &e.Version, &e.Deleted, &e.Overview, &e.NonceOverview,
		&e.Details, &e.NonceDetails, &e.UpdatedAt, &e.IsFile, &e.Pending); err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	normalize(e)
	return e, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// GetBatch returns one page of entries ordered by id so that consecutive
// offsets partition the table.
func (r *SQLiteRepository) GetBatch(ctx context.Context, limit, offset int) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]models.Entry, 0, limit)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.Id, &e.Version, &e.Deleted, &e.Overview, &e.NonceOverview,
			&e.Details, &e.NonceDetails, &e.UpdatedAt, &e.IsFile, &e.Pending); err != nil {
			return nil, err
		}
		normalize(&e)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// normalize restores empty BLOBs that the driver scanned as nil.
func normalize(e *models.Entry) {
	e.Overview = dbx.NotNullBlob(e.Overview)
	e.NonceOverview = dbx.NotNullBlob(e.NonceOverview)
	e.Details = dbx.NotNullBlob(e.Details)
	e.NonceDetails = dbx.NotNullBlob(e.NonceDetails)
}

func (r *SQLiteRepository) Insert(ctx context.Context, rows []models.Entry) error {
	for i := range rows {
		if err := r.CreateOrUpdate(ctx, &rows[i]); err != nil {
			return fmt.Errorf("insert entry %q: %w", rows[i].Id, err)
		}
	}
	return nil
}
