package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		value  []byte
		isNull bool
	)
	err := r.db.QueryRowContext(ctx, `SELECT value, value IS NULL FROM metadata WHERE key = ?`, key).Scan(&value, &isNull)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return blobValue(value, isNull), nil
}

// blobValue keeps a stored empty value apart from NULL.
func blobValue(b []byte, isNull bool) []byte {
	if isNull {
		return nil
	}
	return dbx.NotNullBlob(b)
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM metadata`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count metadata: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) GetBatch(ctx context.Context, limit, offset int) ([]models.MetadataItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, value IS NULL FROM metadata ORDER BY key LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	result := make([]models.MetadataItem, 0, limit)
	for rows.Next() {
		var (
			item   models.MetadataItem
			isNull bool
		)
		if err := rows.Scan(&item.Key, &item.Value, &isNull); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		item.Value = blobValue(item.Value, isNull)
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, rows []models.MetadataItem) error {
	for _, item := range rows {
		if err := r.Set(ctx, item.Key, item.Value); err != nil {
			return err
		}
	}
	return nil
}
