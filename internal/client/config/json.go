package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// JsonConfig is the on-disk form of Config. Absent keys leave the current
// value alone.
type JsonConfig struct {
	DBDriver    *string `json:"db_driver"`
	DBDSN       *string `json:"db_dsn"`
	ScratchDir  *string `json:"scratch_dir"`
	PageSize    *int    `json:"page_size"`
	KDFOpsLimit *uint32 `json:"kdf_ops_limit"`
	KDFMemLimit *uint32 `json:"kdf_mem_limit"`
	LogLevel    *string `json:"log_level"`
	UserID      *string `json:"user_id"`
	ClientID    *string `json:"client_id"`
	Username    *string `json:"username"`
}

func parseJson(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&cfg.DBDriver, jc.DBDriver)
	set(&cfg.DBDSN, jc.DBDSN)
	set(&cfg.ScratchDir, jc.ScratchDir)
	set(&cfg.PageSize, jc.PageSize)
	set(&cfg.KDFOpsLimit, jc.KDFOpsLimit)
	set(&cfg.KDFMemLimit, jc.KDFMemLimit)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.UserID, jc.UserID)
	set(&cfg.ClientID, jc.ClientID)
	set(&cfg.Username, jc.Username)

	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
