package backup

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/keeperbackup/internal/backup/archiver"
	"github.com/dmitrijs2005/keeperbackup/internal/backup/meta"
	"github.com/dmitrijs2005/keeperbackup/internal/backup/packager"
	"github.com/dmitrijs2005/keeperbackup/internal/cryptox"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindNone Kind = iota
	KindUnknown
	KindCanceled
	KindBusy
	KindStorage
	KindPackaging
	KindMetadataMissing
	KindMetadataMalformed
	KindUserIDInvalid
	KindUnknownVersion
	KindLibraryLoad
	KindKeyDerivation
	KindHeaderFormat
	KindAccountMismatch
	KindAuthentication
)

var kindNames = map[Kind]string{
	KindNone:              "none",
	KindUnknown:           "unknown",
	KindCanceled:          "canceled",
	KindBusy:              "busy",
	KindStorage:           "storage",
	KindPackaging:         "packaging",
	KindMetadataMissing:   "metadata_missing",
	KindMetadataMalformed: "metadata_malformed",
	KindUserIDInvalid:     "user_id_invalid",
	KindUnknownVersion:    "unknown_backup_version",
	KindLibraryLoad:       "library_load",
	KindKeyDerivation:     "key_derivation",
	KindHeaderFormat:      "header_format",
	KindAccountMismatch:   "account_mismatch",
	KindAuthentication:    "authentication",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// KindOf maps err onto the closed set of failure kinds.
func KindOf(err error) Kind {
	var (
		unknownVersion *meta.UnknownVersionError
		tableErr       *archiver.TableError
	)

	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrBusy):
		return KindBusy
	case errors.Is(err, cryptox.ErrAccountMismatch):
		return KindAccountMismatch
	case errors.Is(err, cryptox.ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, cryptox.ErrHeaderFormat):
		return KindHeaderFormat
	case errors.Is(err, cryptox.ErrKeyDerivation):
		return KindKeyDerivation
	case errors.Is(err, cryptox.ErrLibraryLoad):
		return KindLibraryLoad
	case errors.Is(err, packager.ErrMetadataMissing):
		return KindMetadataMissing
	case errors.Is(err, packager.ErrPackaging):
		return KindPackaging
	case errors.Is(err, meta.ErrNotFound):
		return KindMetadataMissing
	case errors.Is(err, meta.ErrMalformed):
		return KindMetadataMalformed
	case errors.Is(err, meta.ErrUserIDInvalid):
		return KindUserIDInvalid
	case errors.As(err, &unknownVersion):
		return KindUnknownVersion
	case errors.As(err, &tableErr):
		return KindStorage
	default:
		return KindUnknown
	}
}

// UserMessage is the text shown to a user for a failure of kind k. Wrong
// password, foreign account and newer format always read differently.
func (k Kind) UserMessage() string {
	switch k {
	case KindNone:
		return "Done."
	case KindCanceled:
		return "The operation was canceled."
	case KindBusy:
		return "Another backup or restore is already running for this account."
	case KindAuthentication:
		return "Wrong password, or the backup file is corrupted."
	case KindHeaderFormat:
		return "This file is not a backup or is damaged."
	case KindAccountMismatch, KindUserIDInvalid:
		return "This backup belongs to a different account."
	case KindUnknownVersion:
		return "This backup was made by a newer version of the app. Update the app to restore it."
	case KindMetadataMissing, KindMetadataMalformed, KindPackaging:
		return "The backup contents are damaged or incomplete."
	case KindStorage:
		return "Could not read or write the local database."
	case KindKeyDerivation:
		return "Could not derive the encryption key from the password."
	case KindLibraryLoad:
		return "The encryption library is unavailable."
	default:
		return "The operation failed."
	}
}
