package cryptox

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

// StreamHeaderSize is the length of the random stream header written after
// the Header.
const StreamHeaderSize = 24

// Message tags, stored as the first plaintext byte of each message.
const (
	TagMessage byte = 0x00
	TagFinal   byte = 0x03
)

// StreamOverhead is the ciphertext expansion of one message.
const StreamOverhead = 1 + chacha20poly1305.Overhead

var errStreamExhausted = errors.New("stream message counter exhausted")

// stream seals or opens a sequence of messages under a per-stream subkey.
// Message i uses nonce LE32(i) || header[16:24].
type stream struct {
	aead    cipher.AEAD
	nonce   [chacha20poly1305.NonceSize]byte
	counter uint64
}

func newStream(key, header []byte) (*stream, error) {
	if len(header) != StreamHeaderSize {
		return nil, fmt.Errorf("stream header must be %d bytes", StreamHeaderSize)
	}

	subkey, err := chacha20.HChaCha20(key, header[:16])
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(subkey)

	aead, err := chacha20poly1305.New(subkey)
	if err != nil {
		return nil, err
	}

	s := &stream{aead: aead}
	copy(s.nonce[4:], header[16:24])
	return s, nil
}

func (s *stream) next() ([]byte, error) {
	if s.counter > math.MaxUint32 {
		return nil, errStreamExhausted
	}
	binary.LittleEndian.PutUint32(s.nonce[:4], uint32(s.counter))
	s.counter++
	return s.nonce[:], nil
}

func (s *stream) seal(tag byte, msg, ad []byte) ([]byte, error) {
	nonce, err := s.next()
	if err != nil {
		return nil, err
	}

	pt := make([]byte, 1+len(msg))
	pt[0] = tag
	copy(pt[1:], msg)
	defer memguard.WipeBytes(pt)

	return s.aead.Seal(nil, nonce, pt, ad), nil
}

func (s *stream) open(ct, ad []byte) (byte, []byte, error) {
	nonce, err := s.next()
	if err != nil {
		return 0, nil, err
	}
	if len(ct) < StreamOverhead {
		return 0, nil, errors.New("message too short")
	}

	pt, err := s.aead.Open(nil, nonce, ct, ad)
	if err != nil {
		return 0, nil, err
	}
	return pt[0], pt[1:], nil
}
