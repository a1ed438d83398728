package files

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
)

const fileColumns = `entry_id, encrypted_file_key, nonce, local_path, upload_status, deleted`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, f *models.File) error {

	query := `INSERT INTO files (` + fileColumns + `)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(entry_id) DO UPDATE SET
				encrypted_file_key = excluded.encrypted_file_key,
				nonce = excluded.nonce,
				local_path = excluded.local_path,
				upload_status = excluded.upload_status,
				deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query, f.EntryID, f.EncryptedFileKey, f.Nonce, f.LocalPath, f.UploadStatus, f.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert file: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetByEntryID(ctx context.Context, id string) (*models.File, error) {

	query := `SELECT ` + fileColumns + ` FROM files WHERE entry_id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	f := &models.File{}
	err := row.Scan(&f.EntryID, &f.EncryptedFileKey, &f.Nonce, &f.LocalPath, &f.UploadStatus, &f.Deleted)
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	normalize(f)

	return f, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) GetBatch(ctx context.Context, limit, offset int) ([]models.File, error) {

	query := `SELECT ` + fileColumns + ` FROM files ORDER BY entry_id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error selecting files: %w", err)
	}
	defer rows.Close()

	result := make([]models.File, 0, limit)

	for rows.Next() {
		var f models.File
		err := rows.Scan(&f.EntryID, &f.EncryptedFileKey, &f.Nonce, &f.LocalPath, &f.UploadStatus, &f.Deleted)
		if err != nil {
			return nil, err
		}
		normalize(&f)
		result = append(result, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func normalize(f *models.File) {
	f.EncryptedFileKey = dbx.NotNullBlob(f.EncryptedFileKey)
	f.Nonce = dbx.NotNullBlob(f.Nonce)
}

func (r *SQLiteRepository) Insert(ctx context.Context, rows []models.File) error {
	for i := range rows {
		if err := r.CreateOrUpdate(ctx, &rows[i]); err != nil {
			return fmt.Errorf("insert file %q: %w", rows[i].EntryID, err)
		}
	}
	return nil
}
