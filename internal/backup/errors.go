package backup

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when an operation of the same kind is already running
// for the account.
var ErrBusy = errors.New("another backup operation is running for this account")

// Pipeline stages reported in CreationError and RestoreError.
const (
	StageExport   = "export"
	StageMetadata = "metadata"
	StagePackage  = "package"
	StageEncrypt  = "encrypt"
	StageDecrypt  = "decrypt"
	StageUnpack   = "unpack"
	StageImport   = "import"
)

// CreationError is the single failure of a backup creation. Err is the
// first error met; Table is set when it came from a table export.
type CreationError struct {
	Stage string
	Table string
	Err   error
}

func (e *CreationError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("backup creation failed at %s of %s: %v", e.Stage, e.Table, e.Err)
	}
	return fmt.Sprintf("backup creation failed at %s: %v", e.Stage, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// RestoreError is the single failure of a restore. Tables imported before
// the failing one stay imported.
type RestoreError struct {
	Stage string
	Table string
	Err   error
}

func (e *RestoreError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("restore failed at %s of %s: %v", e.Stage, e.Table, e.Err)
	}
	return fmt.Sprintf("restore failed at %s: %v", e.Stage, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
