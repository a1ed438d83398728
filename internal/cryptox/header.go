package cryptox

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the exact length of a serialized Header.
	HeaderSize = 63

	// HeaderVersion is the only header version this build reads and writes.
	HeaderVersion uint16 = 1

	SaltSize        = 16
	AccountHashSize = 32
)

// Magic starts every backup artifact.
var Magic = [4]byte{'G', 'K', 'B', 'K'}

// Header is the plaintext prefix of an artifact.
//
// Layout, integers big-endian:
//
//	0..3    magic "GKBK"
//	4       reserved, 0
//	5..6    version
//	7..22   salt
//	23..54  account-binding hash
//	55..58  argon2id iterations
//	59..62  argon2id memory in bytes
type Header struct {
	Version     uint16
	Salt        [SaltSize]byte
	AccountHash [AccountHashSize]byte
	Params      Params
}

// MarshalBinary serializes h into exactly HeaderSize bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)

	copy(buf[0:4], Magic[:])
	buf[4] = 0
	binary.BigEndian.PutUint16(buf[5:7], h.Version)
	copy(buf[7:23], h.Salt[:])
	copy(buf[23:55], h.AccountHash[:])
	binary.BigEndian.PutUint32(buf[55:59], h.Params.OpsLimit)
	binary.BigEndian.PutUint32(buf[59:63], h.Params.MemLimit)

	return buf, nil
}

// ParseHeader decodes a serialized Header. It fails with ErrHeaderFormat
// unless b is exactly HeaderSize bytes, starts with Magic and carries
// HeaderVersion.
func ParseHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, fmt.Errorf("%w: length %d, want %d", ErrHeaderFormat, len(b), HeaderSize)
	}
	if [4]byte(b[0:4]) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic", ErrHeaderFormat)
	}

	var h Header
	h.Version = binary.BigEndian.Uint16(b[5:7])
	if h.Version != HeaderVersion {
		return Header{}, fmt.Errorf("%w: unsupported version %d", ErrHeaderFormat, h.Version)
	}

	copy(h.Salt[:], b[7:23])
	copy(h.AccountHash[:], b[23:55])
	h.Params.OpsLimit = binary.BigEndian.Uint32(b[55:59])
	h.Params.MemLimit = binary.BigEndian.Uint32(b[59:63])

	return h, nil
}
