package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Bytes is a byte slice serialized as a JSON array of integers.
// A nil slice is written as null and an empty one as [].
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}

	buf := make([]byte, 0, len(b)*4+2)
	buf = append(buf, '[')
	for i, v := range b {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(v), 10)
	}
	buf = append(buf, ']')

	return buf, nil
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}

	var values []int64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %v", ErrByteRange, err)
	}

	out := make(Bytes, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: %d at index %d", ErrByteRange, v, i)
		}
		out[i] = byte(v)
	}

	*b = out
	return nil
}
