// Package meta writes, reads and validates the identity descriptor stored in
// every backup archive as metadata.json.
package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
)

// FileName is the canonical name of the descriptor inside an archive.
const FileName = "metadata.json"

// CurrentVersion is the backup format version written by this build.
const CurrentVersion = 1

var (
	ErrNotFound      = errors.New("backup metadata not found")
	ErrMalformed     = errors.New("backup metadata is malformed")
	ErrUserIDInvalid = errors.New("backup belongs to a different user")
)

// UnknownVersionError is returned for archives written by a newer format
// version than this build understands.
type UnknownVersionError struct {
	Version   int
	Supported int
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown backup version %d (supported up to %d)", e.Version, e.Supported)
}

// Metadata binds an archive to the account and client that produced it.
type Metadata struct {
	UserID        string `json:"userId"`
	ClientID      string `json:"clientId"`
	UserHandle    string `json:"userHandle"`
	BackupVersion int    `json:"backupVersion"`
}

// New builds the descriptor for a backup taken in session s.
func New(s models.Session, version int) Metadata {
	return Metadata{
		UserID:        s.UserID,
		ClientID:      s.ClientID,
		UserHandle:    s.Username,
		BackupVersion: version,
	}
}

// Write stores md as FileName inside dir and returns the file path.
func Write(md Metadata, dir string) (string, error) {
	b, err := json.Marshal(md)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return path, nil
}

// wire mirrors Metadata with every key required.
type wire struct {
	UserID        *string `json:"userId"`
	ClientID      *string `json:"clientId"`
	UserHandle    *string `json:"userHandle"`
	BackupVersion *int    `json:"backupVersion"`
}

// Read loads the descriptor at path. A missing file is ErrNotFound; a file
// that is not a complete descriptor is ErrMalformed.
func Read(path string) (Metadata, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Metadata{}, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	var w wire
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Metadata{}, fmt.Errorf("%w: trailing data", ErrMalformed)
	}

	if w.UserID == nil || w.ClientID == nil || w.UserHandle == nil || w.BackupVersion == nil {
		return Metadata{}, fmt.Errorf("%w: missing required field", ErrMalformed)
	}

	return Metadata{
		UserID:        *w.UserID,
		ClientID:      *w.ClientID,
		UserHandle:    *w.UserHandle,
		BackupVersion: *w.BackupVersion,
	}, nil
}

// Validate accepts md only for expectedUserID and for versions not newer
// than currentVersion.
func Validate(md Metadata, expectedUserID string, currentVersion int) error {
	if md.UserID != expectedUserID {
		return ErrUserIDInvalid
	}
	if md.BackupVersion > currentVersion {
		return &UnknownVersionError{Version: md.BackupVersion, Supported: currentVersion}
	}
	return nil
}
