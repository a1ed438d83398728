package cryptox

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KeySize is the length of derived keys and account-binding hashes.
const KeySize = 32

// Bounds accepted by Params.Validate.
const (
	MinOpsLimit uint32 = 1
	MaxOpsLimit uint32 = 20
	MinMemLimit uint32 = 8 << 10
	MaxMemLimit uint32 = 1 << 30
)

// Params are the argon2id cost parameters stored in a Header.
type Params struct {
	// OpsLimit is the number of argon2id passes.
	OpsLimit uint32
	// MemLimit is the argon2id memory in bytes.
	MemLimit uint32
}

func DefaultParams() Params {
	return Params{OpsLimit: 2, MemLimit: 64 << 20}
}

// DefaultReadLimits is the highest KDF cost an engine accepts from an
// artifact it did not write with its own settings.
func DefaultReadLimits() Params {
	return Params{OpsLimit: 8, MemLimit: 256 << 20}
}

func (p Params) Validate() error {
	switch {
	case p.OpsLimit < MinOpsLimit || p.OpsLimit > MaxOpsLimit:
		return fmt.Errorf("%w: ops limit %d outside %d..%d", ErrKeyDerivation, p.OpsLimit, MinOpsLimit, MaxOpsLimit)
	case p.MemLimit < MinMemLimit || p.MemLimit > MaxMemLimit:
		return fmt.Errorf("%w: mem limit %d outside %d..%d", ErrKeyDerivation, p.MemLimit, MinMemLimit, MaxMemLimit)
	default:
		return nil
	}
}

// DeriveKey runs argon2id over secret. The same call with an account id as
// secret yields the account-binding hash.
func DeriveKey(secret, salt []byte, p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrKeyDerivation)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes", ErrKeyDerivation, SaltSize)
	}

	return argon2.IDKey(secret, salt, p.OpsLimit, p.MemLimit/1024, 1, KeySize), nil
}
