package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keeperbackup/internal/backup"
)

const (
	ExitCodeSuccess         = 0
	ExitCodeGeneric         = 1
	ExitCodeUsage           = 2
	ExitCodeAuthFailed      = 3
	ExitCodeAccountMismatch = 4
	ExitCodeNewerFormat     = 5
	ExitCodeBusy            = 6
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf(format, args...)}
}

// ExitCode returns the exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}

	switch backup.KindOf(err) {
	case backup.KindAuthentication, backup.KindHeaderFormat:
		return ExitCodeAuthFailed
	case backup.KindAccountMismatch, backup.KindUserIDInvalid:
		return ExitCodeAccountMismatch
	case backup.KindUnknownVersion:
		return ExitCodeNewerFormat
	case backup.KindBusy:
		return ExitCodeBusy
	default:
		return ExitCodeGeneric
	}
}

// Message is the line printed to the user for a failed command.
func Message(err error) string {
	var ee *ExitError
	if errors.As(err, &ee) && ee.Code == ExitCodeUsage {
		return err.Error()
	}

	k := backup.KindOf(err)
	if k == backup.KindUnknown {
		return err.Error()
	}
	return k.UserMessage()
}
