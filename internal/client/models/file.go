package models

// Upload states of a File.
const (
	UploadStatusPending   = "pending"
	UploadStatusCompleted = "completed"
)

// File describes the encrypted blob attached to a file entry.
type File struct {
	EntryID          string
	EncryptedFileKey []byte
	Nonce            []byte
	// LocalPath is nil once the staged copy has been uploaded and removed.
	LocalPath    *string
	UploadStatus string
	Deleted      bool
}
