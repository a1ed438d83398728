package meta

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	md := New(models.Session{UserID: "u1", ClientID: "c1", Username: "alice"}, CurrentVersion)

	path, err := Write(md, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, md, got)
}

func TestWrite_UsesCanonicalKeys(t *testing.T) {
	path, err := Write(Metadata{UserID: "u1", ClientID: "c1", UserHandle: "h", BackupVersion: 1}, t.TempDir())
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u1","clientId":"c1","userHandle":"h","backupVersion":1}`, string(b))
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), FileName))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRead_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":        `{{{`,
		"missing version": `{"userId":"u1","clientId":"c1","userHandle":"h"}`,
		"unknown key":     `{"userId":"u1","clientId":"c1","userHandle":"h","backupVersion":1,"x":2}`,
		"wrong type":      `{"userId":"u1","clientId":"c1","userHandle":"h","backupVersion":"1"}`,
		"second object":   `{"userId":"u1","clientId":"c1","userHandle":"h","backupVersion":1}{}`,
		"trailing junk":   `{"userId":"u1","clientId":"c1","userHandle":"h","backupVersion":1} x`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

			_, err := Read(path)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		md      Metadata
		uid     string
		current int
		wantErr error
		unknown int
	}{
		{name: "same version", md: Metadata{UserID: "u1", BackupVersion: 1}, uid: "u1", current: 1},
		{name: "older version", md: Metadata{UserID: "u1", BackupVersion: 1}, uid: "u1", current: 3},
		{name: "other user", md: Metadata{UserID: "u2", BackupVersion: 1}, uid: "u1", current: 1, wantErr: ErrUserIDInvalid},
		{name: "newer version", md: Metadata{UserID: "u1", BackupVersion: 2}, uid: "u1", current: 1, unknown: 2},
		{name: "newer than injected version", md: Metadata{UserID: "u1", BackupVersion: 5}, uid: "u1", current: 3, unknown: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.md, tt.uid, tt.current)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.unknown != 0:
				var uv *UnknownVersionError
				require.ErrorAs(t, err, &uv)
				assert.Equal(t, tt.unknown, uv.Version)
				assert.Equal(t, tt.current, uv.Supported)
				assert.Contains(t, err.Error(), fmt.Sprintf("supported up to %d", tt.current))
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestRead_TrailingWhitespaceAllowed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	body := "{\"userId\":\"u1\",\"clientId\":\"c1\",\"userHandle\":\"h\",\"backupVersion\":1}\n\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	md, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "u1", md.UserID)
}
