package codec

import "github.com/dmitrijs2005/keeperbackup/internal/client/models"

// FileRecord is the JSON form of models.File.
type FileRecord struct {
	EntryID          *string `json:"entryId"`
	EncryptedFileKey Bytes   `json:"encryptedFileKey"`
	Nonce            Bytes   `json:"nonce"`
	LocalPath        *string `json:"localPath"`
	UploadStatus     *string `json:"uploadStatus"`
	Deleted          *bool   `json:"deleted"`
}

func (r *FileRecord) UnmarshalJSON(data []byte) error {
	type plain FileRecord
	return Unmarshal(data, (*plain)(r))
}

type FileCodec struct{}

func (FileCodec) Encode(f models.File) FileRecord {
	return FileRecord{
		EntryID:          ptr(f.EntryID),
		EncryptedFileKey: Bytes(f.EncryptedFileKey),
		Nonce:            Bytes(f.Nonce),
		LocalPath:        f.LocalPath,
		UploadStatus:     ptr(f.UploadStatus),
		Deleted:          ptr(f.Deleted),
	}
}

func (FileCodec) Decode(r FileRecord) (models.File, error) {
	switch {
	case r.EntryID == nil:
		return models.File{}, missing("entryId")
	case r.UploadStatus == nil:
		return models.File{}, missing("uploadStatus")
	case r.Deleted == nil:
		return models.File{}, missing("deleted")
	}

	return models.File{
		EntryID:          *r.EntryID,
		EncryptedFileKey: []byte(r.EncryptedFileKey),
		Nonce:            []byte(r.Nonce),
		LocalPath:        r.LocalPath,
		UploadStatus:     *r.UploadStatus,
		Deleted:          *r.Deleted,
	}, nil
}
