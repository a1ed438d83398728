package config

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
	"github.com/spf13/pflag"
)

type Config struct {
	ConfigFile string `env:"KEEPER_CONFIG"`

	DBDriver string `env:"KEEPER_DB_DRIVER"`
	DBDSN    string `env:"KEEPER_DB_DSN"`

	ScratchDir string `env:"KEEPER_SCRATCH_DIR"`
	PageSize   int    `env:"KEEPER_PAGE_SIZE"`

	KDFOpsLimit uint32 `env:"KEEPER_KDF_OPS_LIMIT"`
	KDFMemLimit uint32 `env:"KEEPER_KDF_MEM_LIMIT"`

	LogLevel string `env:"KEEPER_LOG_LEVEL"`

	UserID   string `env:"KEEPER_USER_ID"`
	ClientID string `env:"KEEPER_CLIENT_ID"`
	Username string `env:"KEEPER_USERNAME"`
}

func (c *Config) LoadDefaults() {
	c.DBDriver = dbx.DriverSQLite
	c.DBDSN = "keeper.db"
	c.ScratchDir = ".keeperbackup"
	c.PageSize = 500
	c.KDFOpsLimit = 2
	c.KDFMemLimit = 64 << 20
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the JSON file, the environment and the
// flags in fs that were changed on the command line.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	// the file location itself may come from the environment or a flag
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}

	if cfg.ConfigFile != "" {
		if err := parseJson(cfg, cfg.ConfigFile); err != nil {
			return nil, err
		}
		if err := parseEnv(cfg); err != nil {
			return nil, err
		}
		if err := applyFlags(cfg, fs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.DBDriver != dbx.DriverSQLite && c.DBDriver != dbx.DriverPostgres {
		errs = append(errs, fmt.Errorf("unsupported db driver %q", c.DBDriver))
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("db dsn must be set"))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", c.PageSize))
	}
	if c.ScratchDir == "" {
		errs = append(errs, errors.New("scratch dir must be set"))
	}

	return errors.Join(errs...)
}
