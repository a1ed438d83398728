package codec

import "github.com/dmitrijs2005/keeperbackup/internal/client/models"

// EntryRecord is the JSON form of models.Entry.
type EntryRecord struct {
	ID            *string `json:"id"`
	Version       *int64  `json:"version"`
	Deleted       *bool   `json:"deleted"`
	Overview      Bytes   `json:"overview"`
	NonceOverview Bytes   `json:"nonceOverview"`
	Details       Bytes   `json:"details"`
	NonceDetails  Bytes   `json:"nonceDetails"`
	UpdatedAt     *int64  `json:"updatedAt"`
	IsFile        *bool   `json:"isFile"`
	Pending       *bool   `json:"pending"`
}

func (r *EntryRecord) UnmarshalJSON(data []byte) error {
	type plain EntryRecord
	return Unmarshal(data, (*plain)(r))
}

type EntryCodec struct{}

func (EntryCodec) Encode(e models.Entry) EntryRecord {
	return EntryRecord{
		ID:            ptr(e.Id),
		Version:       ptr(e.Version),
		Deleted:       ptr(e.Deleted),
		Overview:      Bytes(e.Overview),
		NonceOverview: Bytes(e.NonceOverview),
		Details:       Bytes(e.Details),
		NonceDetails:  Bytes(e.NonceDetails),
		UpdatedAt:     e.UpdatedAt,
		IsFile:        ptr(e.IsFile),
		Pending:       ptr(e.Pending),
	}
}

func (EntryCodec) Decode(r EntryRecord) (models.Entry, error) {
	switch {
	case r.ID == nil:
		return models.Entry{}, missing("id")
	case r.Version == nil:
		return models.Entry{}, missing("version")
	case r.Deleted == nil:
		return models.Entry{}, missing("deleted")
	case r.IsFile == nil:
		return models.Entry{}, missing("isFile")
	case r.Pending == nil:
		return models.Entry{}, missing("pending")
	}

	return models.Entry{
		Id:            *r.ID,
		Version:       *r.Version,
		Deleted:       *r.Deleted,
		Overview:      []byte(r.Overview),
		NonceOverview: []byte(r.NonceOverview),
		Details:       []byte(r.Details),
		NonceDetails:  []byte(r.NonceDetails),
		UpdatedAt:     r.UpdatedAt,
		IsFile:        *r.IsFile,
		Pending:       *r.Pending,
	}, nil
}
