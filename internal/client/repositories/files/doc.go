// Package files provides the client-side persistence layer for file metadata
// associated with vault entries.
//
// # Overview
//
// The package defines a Repository interface for File records (per-file key,
// nonce, optional local path, upload status, soft-delete). A SQLite-backed
// implementation (SQLiteRepository) persists data via a dbx.DBTX
// (*sql.DB or *sql.Tx).
//
// Typical Usage
//
//	repo := files.NewSQLiteRepository(db)
//	_ = repo.CreateOrUpdate(ctx, file)
//	f, _ := repo.GetByEntryID(ctx, entryID)
//	page, _ := repo.GetBatch(ctx, 100, 0)
//
// See also: internal/client/models.File for field semantics.
package files
