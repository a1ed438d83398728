package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, dbx.DriverSQLite, c.DBDriver)
	assert.Equal(t, 500, c.PageSize)
	assert.Equal(t, uint32(2), c.KDFOpsLimit)
	assert.Equal(t, uint32(64<<20), c.KDFMemLimit)
	assert.Equal(t, "info", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(flagSet(t))
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"db_dsn":        "from-json.db",
		"page_size":     50,
		"log_level":     "debug",
		"user_id":       "json-user",
		"kdf_ops_limit": 3,
	})

	t.Setenv("KEEPER_PAGE_SIZE", "70")
	t.Setenv("KEEPER_USER_ID", "env-user")

	cfg, err := Load(flagSet(t, "--config", path, "--user-id", "flag-user"))
	require.NoError(t, err)

	assert.Equal(t, "from-json.db", cfg.DBDSN, "json over defaults")
	assert.Equal(t, "debug", cfg.LogLevel, "json over defaults")
	assert.Equal(t, uint32(3), cfg.KDFOpsLimit, "json over defaults")
	assert.Equal(t, 70, cfg.PageSize, "env over json")
	assert.Equal(t, "flag-user", cfg.UserID, "flags over env")
	assert.Equal(t, ".keeperbackup", cfg.ScratchDir, "untouched default")
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"db_driver": "pgx", "db_dsn": "postgres://localhost/keeper"})
	t.Setenv("KEEPER_CONFIG", path)

	cfg, err := Load(flagSet(t))
	require.NoError(t, err)
	assert.Equal(t, dbx.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/keeper", cfg.DBDSN)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	t.Setenv("KEEPER_LOG_LEVEL", "warn")

	cfg, err := Load(flagSet(t, "--page-size", "10"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 10, cfg.PageSize)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(flagSet(t, "--config", filepath.Join(t.TempDir(), "none.json")))
		require.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		_, err := Load(flagSet(t, "--config", bad))
		require.Error(t, err)
	})

	t.Run("invalid env", func(t *testing.T) {
		t.Setenv("KEEPER_PAGE_SIZE", "many")
		_, err := Load(flagSet(t))
		require.Error(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := Load(flagSet(t, "--db-driver", "mysql", "--page-size", "0"))
		require.ErrorContains(t, err, "unsupported db driver")
		require.ErrorContains(t, err, "page size")
	})
}
