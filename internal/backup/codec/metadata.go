package codec

import "github.com/dmitrijs2005/keeperbackup/internal/client/models"

// MetadataRecord is the JSON form of models.MetadataItem.
type MetadataRecord struct {
	Key   *string `json:"key"`
	Value Bytes   `json:"value"`
}

func (r *MetadataRecord) UnmarshalJSON(data []byte) error {
	type plain MetadataRecord
	return Unmarshal(data, (*plain)(r))
}

type MetadataCodec struct{}

func (MetadataCodec) Encode(m models.MetadataItem) MetadataRecord {
	return MetadataRecord{Key: ptr(m.Key), Value: Bytes(m.Value)}
}

func (MetadataCodec) Decode(r MetadataRecord) (models.MetadataItem, error) {
	if r.Key == nil {
		return models.MetadataItem{}, missing("key")
	}
	return models.MetadataItem{Key: *r.Key, Value: []byte(r.Value)}, nil
}
