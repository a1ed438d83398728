// Package entries provides the client-side persistence layer for vault entries.
//
// # Overview
//
// The package defines a Repository interface for the operations on Entry
// models (see internal/client/models). A SQLite-backed implementation
// (SQLiteRepository) persists data using a dbx.DBTX (either *sql.DB or *sql.Tx).
//
// # Data Model
//
// Each entry stores encrypted fields (overview/details + nonces), a soft-delete
// flag (deleted), a pending-sync flag and an optional last-update timestamp.
//
// # Paging
//
// Count, GetBatch and Insert form the storage gateway used by the backup
// archiver: GetBatch pages are ordered by id, Insert upserts so restoring
// over an existing vault replaces rows instead of failing.
//
// Typical Usage
//
//	repo := entries.NewSQLiteRepository(db)
//	_ = repo.CreateOrUpdate(ctx, entry)
//	n, _ := repo.Count(ctx)
//	page, _ := repo.GetBatch(ctx, 100, 0)
package entries
