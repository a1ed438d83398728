package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(buf, nil)))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRedactingHandler_MasksSensitiveKeys(t *testing.T) {
	for _, key := range []string{"password", "Passphrase", "secret", "key", "salt"} {
		t.Run(key, func(t *testing.T) {
			var buf bytes.Buffer
			jsonLogger(&buf).Info("msg", key, "hunter2")

			out := decodeLine(t, &buf)
			assert.Equal(t, redacted, out[key])
		})
	}
}

func TestRedactingHandler_KeepsOtherAttrs(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf).Info("msg", "table", "entries", "rows", 12)

	out := decodeLine(t, &buf)
	assert.Equal(t, "entries", out["table"])
	assert.EqualValues(t, 12, out["rows"])
}

func TestRedactingHandler_GroupsAndWith(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf).With("secret", "s3").WithGroup("kdf")
	l.Info("msg", slog.Group("params", "salt", "abc", "ops", 2))

	out := decodeLine(t, &buf)
	assert.Equal(t, redacted, out["secret"])

	kdf := out["kdf"].(map[string]any)
	params := kdf["params"].(map[string]any)
	assert.Equal(t, redacted, params["salt"])
	assert.EqualValues(t, 2, params["ops"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	require.NoError(t, err)

	l.Info(context.Background(), "hidden")
	l.Warn(context.Background(), "shown", "password", "p")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "password="+redacted)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error(context.Background(), "dropped")
	l.With("a", 1).Info(context.Background(), "dropped")
}
