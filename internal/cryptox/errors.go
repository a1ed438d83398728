package cryptox

import "errors"

var (
	// ErrLibraryLoad means the locked-memory salt source is unavailable.
	// Encryption falls back to the engine's random reader.
	ErrLibraryLoad     = errors.New("crypto library unavailable")
	ErrKeyDerivation   = errors.New("key derivation failed")
	ErrHeaderFormat    = errors.New("invalid backup header")
	ErrAccountMismatch = errors.New("backup belongs to a different account")
	ErrAuthentication  = errors.New("wrong password or corrupted backup")
)
