// Package codec converts local database rows into portable JSON records and
// back.
//
// Every table has its own record type and codec. Records mirror rows field by
// field: byte columns are written as arrays of integers, nullable columns are
// always written (as null when unset), and required columns must be present
// when a record is read back. Decoding is strict; unknown keys and
// out-of-range bytes are errors, never coerced.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMissingField    = errors.New("codec: required field missing")
	ErrByteRange       = errors.New("codec: byte value out of range 0..255")
	ErrMalformedRecord = errors.New("codec: malformed record")
)

// Codec maps a row of type R to its JSON record J and back.
type Codec[R, J any] interface {
	Encode(row R) J
	Decode(rec J) (R, error)
}

// Unmarshal strictly decodes one JSON record into v.
func Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrMalformedRecord)
	}
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func ptr[T any](v T) *T { return &v }
