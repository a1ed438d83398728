package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by every command.
const (
	FlagConfig     = "config"
	FlagDBDriver   = "db-driver"
	FlagDBDSN      = "db"
	FlagScratchDir = "scratch-dir"
	FlagPageSize   = "page-size"
	FlagKDFOps     = "kdf-ops"
	FlagKDFMem     = "kdf-mem"
	FlagLogLevel   = "log-level"
	FlagUserID     = "user-id"
	FlagClientID   = "client-id"
	FlagUsername   = "username"
)

// RegisterFlags adds the configuration flags to fs, showing the defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.String(FlagDBDriver, d.DBDriver, "database driver (sqlite or pgx)")
	fs.String(FlagDBDSN, d.DBDSN, "database file or connection string")
	fs.String(FlagScratchDir, d.ScratchDir, "directory for temporary backup files")
	fs.Int(FlagPageSize, d.PageSize, "rows per exported page")
	fs.Uint32(FlagKDFOps, d.KDFOpsLimit, "argon2id passes for new backups")
	fs.Uint32(FlagKDFMem, d.KDFMemLimit, "argon2id memory in bytes for new backups")
	fs.String(FlagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.String(FlagUserID, "", "override the account id of the local session")
	fs.String(FlagClientID, "", "override the client id of the local session")
	fs.String(FlagUsername, "", "override the username of the local session")
}

// applyFlags copies the flags that were set on the command line into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	strs := map[string]*string{
		FlagConfig:     &cfg.ConfigFile,
		FlagDBDriver:   &cfg.DBDriver,
		FlagDBDSN:      &cfg.DBDSN,
		FlagScratchDir: &cfg.ScratchDir,
		FlagLogLevel:   &cfg.LogLevel,
		FlagUserID:     &cfg.UserID,
		FlagClientID:   &cfg.ClientID,
		FlagUsername:   &cfg.Username,
	}
	for name, dst := range strs {
		if !changed(fs, name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if changed(fs, FlagPageSize) {
		v, err := fs.GetInt(FlagPageSize)
		if err != nil {
			return err
		}
		cfg.PageSize = v
	}

	u32 := map[string]*uint32{FlagKDFOps: &cfg.KDFOpsLimit, FlagKDFMem: &cfg.KDFMemLimit}
	for name, dst := range u32 {
		if !changed(fs, name) {
			continue
		}
		v, err := fs.GetUint32(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	return nil
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
