package backup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/keeperbackup/internal/client/localdb"
	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/dmitrijs2005/keeperbackup/internal/client/repositories/entries"
	"github.com/dmitrijs2005/keeperbackup/internal/client/repositories/files"
	"github.com/dmitrijs2005/keeperbackup/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/keeperbackup/internal/cryptox"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
	"github.com/dmitrijs2005/keeperbackup/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openLocal(t *testing.T) *dbx.DB {
	t.Helper()
	db, err := localdb.Open(context.Background(), dbx.DriverSQLite, filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedLocal(t *testing.T, db *dbx.DB) {
	t.Helper()
	ctx := context.Background()

	md := metadata.NewSQLiteRepository(db)
	require.NoError(t, md.Set(ctx, "user_id", []byte("u1")))
	require.NoError(t, md.Set(ctx, "salt", []byte{1, 2, 3}))
	require.NoError(t, md.Set(ctx, "empty", nil))

	ts := int64(1700000000000)
	var rows []models.Entry
	for i := range 11 {
		e := models.Entry{
			Id: string(rune('a'+i)) + "-entry", Version: int64(i + 1),
			Overview: []byte{byte(i), 0xFF}, NonceOverview: []byte{byte(i)},
			Details: []byte("details"), NonceDetails: []byte{9, 9},
			IsFile: i == 3, Pending: i%4 == 0,
		}
		if i%2 == 0 {
			e.UpdatedAt = &ts
		}
		rows = append(rows, e)
	}
	require.NoError(t, entries.NewSQLiteRepository(db).Insert(ctx, rows))

	path := "/tmp/staged"
	require.NoError(t, files.NewSQLiteRepository(db).CreateOrUpdate(ctx, &models.File{
		EntryID: "d-entry", EncryptedFileKey: []byte{7}, Nonce: []byte{8},
		LocalPath: &path, UploadStatus: models.UploadStatusPending,
	}))
}

func dump(t *testing.T, db *dbx.DB) ([]models.MetadataItem, []models.Entry, []models.File) {
	t.Helper()
	ctx := context.Background()

	m, err := metadata.NewSQLiteRepository(db).GetBatch(ctx, 1000, 0)
	require.NoError(t, err)
	e, err := entries.NewSQLiteRepository(db).GetBatch(ctx, 1000, 0)
	require.NoError(t, err)
	f, err := files.NewSQLiteRepository(db).GetBatch(ctx, 1000, 0)
	require.NoError(t, err)
	return m, e, f
}

func TestLocalTables_CreateAndRestore(t *testing.T) {
	ctx := context.Background()
	engine := cryptox.NewEngine(logging.Discard(), cryptox.WithParams(testParams))

	src := openLocal(t)
	seedLocal(t, src)

	req := createReq(t, "u1")
	created, err := NewService(LocalTables(src), engine, logging.Discard(), 4).Create(ctx, req)
	require.NoError(t, err)

	names := make([]string, len(created.Tables))
	for i, tr := range created.Tables {
		names[i] = tr.Table
	}
	assert.Equal(t, []string{TableMetadata, TableEntries, TableFiles}, names)
	assert.Len(t, created.Tables[1].Files, 3)

	dst := openLocal(t)
	restored, err := NewService(LocalTables(dst), engine, logging.Discard(), 4).Restore(ctx, RestoreRequest{
		UserID: "u1", Password: []byte("secret"), Artifact: req.Output, ScratchRoot: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", restored.Metadata.UserID)
	assert.Equal(t, "user-u1", restored.Metadata.UserHandle)
	assert.Equal(t, 11, restored.Tables[1].Rows)

	wm, we, wf := dump(t, src)
	gm, ge, gf := dump(t, dst)
	if diff := cmp.Diff(wm, gm); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(we, ge); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wf, gf); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalTables_EmptyBlobsSurviveRestore(t *testing.T) {
	ctx := context.Background()
	engine := cryptox.NewEngine(logging.Discard(), cryptox.WithParams(testParams))

	src := openLocal(t)
	md := metadata.NewSQLiteRepository(src)
	require.NoError(t, md.Set(ctx, "user_id", []byte("u1")))
	require.NoError(t, md.Set(ctx, "blank", []byte{}))
	require.NoError(t, md.Set(ctx, "unset", nil))
	require.NoError(t, entries.NewSQLiteRepository(src).Insert(ctx, []models.Entry{{
		Id: "e", Version: 1,
		Overview: []byte{}, NonceOverview: []byte{}, Details: []byte{}, NonceDetails: []byte{},
	}}))
	require.NoError(t, files.NewSQLiteRepository(src).Insert(ctx, []models.File{{
		EntryID: "e", EncryptedFileKey: []byte{}, Nonce: []byte{}, UploadStatus: models.UploadStatusCompleted,
	}}))

	req := createReq(t, "u1")
	_, err := NewService(LocalTables(src), engine, logging.Discard(), 4).Create(ctx, req)
	require.NoError(t, err)

	dst := openLocal(t)
	_, err = NewService(LocalTables(dst), engine, logging.Discard(), 4).Restore(ctx, RestoreRequest{
		UserID: "u1", Password: []byte("secret"), Artifact: req.Output, ScratchRoot: t.TempDir(),
	})
	require.NoError(t, err)

	gm, ge, gf := dump(t, dst)
	assert.Equal(t, []models.MetadataItem{
		{Key: "blank", Value: []byte{}},
		{Key: "unset", Value: nil},
		{Key: "user_id", Value: []byte("u1")},
	}, gm)

	require.Len(t, ge, 1)
	assert.Equal(t, []byte{}, ge[0].Overview)
	assert.NotNil(t, ge[0].Overview)
	assert.NotNil(t, ge[0].NonceDetails)

	require.Len(t, gf, 1)
	assert.NotNil(t, gf[0].EncryptedFileKey)
	assert.NotNil(t, gf[0].Nonce)
}
