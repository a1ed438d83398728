package backup

import (
	"github.com/dmitrijs2005/keeperbackup/internal/backup/archiver"
	"github.com/dmitrijs2005/keeperbackup/internal/backup/codec"
	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/dmitrijs2005/keeperbackup/internal/client/repositories/entries"
	"github.com/dmitrijs2005/keeperbackup/internal/client/repositories/files"
	"github.com/dmitrijs2005/keeperbackup/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
)

// Table names, in export and import order.
const (
	TableMetadata = "metadata"
	TableEntries  = "entries"
	TableFiles    = "files"
)

// LocalTables returns the archivers of the local client database in their
// fixed order.
func LocalTables(db *dbx.DB) []Archiver {
	return []Archiver{
		archiver.NewTable[models.MetadataItem, codec.MetadataRecord](TableMetadata, db, func(tx dbx.DBTX) archiver.Gateway[models.MetadataItem] {
			return metadata.NewSQLiteRepository(tx)
		}, codec.MetadataCodec{}),
		archiver.NewTable[models.Entry, codec.EntryRecord](TableEntries, db, func(tx dbx.DBTX) archiver.Gateway[models.Entry] {
			return entries.NewSQLiteRepository(tx)
		}, codec.EntryCodec{}),
		archiver.NewTable[models.File, codec.FileRecord](TableFiles, db, func(tx dbx.DBTX) archiver.Gateway[models.File] {
			return files.NewSQLiteRepository(tx)
		}, codec.FileCodec{}),
	}
}
