package cryptox

import (
	"bytes"
	"fmt"

	"github.com/awnumar/memguard"
)

// SaltSource produces random salts.
type SaltSource interface {
	Salt(n int) ([]byte, error)
}

// LockedSaltSource draws salts from memguard's locked, guarded buffers.
// A failing memguard is reported as ErrLibraryLoad.
type LockedSaltSource struct{}

func (LockedSaltSource) Salt(n int) (salt []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			salt, err = nil, fmt.Errorf("%w: %v", ErrLibraryLoad, r)
		}
	}()

	buf := memguard.NewBufferRandom(n)
	defer buf.Destroy()

	if buf.Size() != n {
		return nil, fmt.Errorf("%w: got %d random bytes, want %d", ErrLibraryLoad, buf.Size(), n)
	}
	return bytes.Clone(buf.Bytes()), nil
}
