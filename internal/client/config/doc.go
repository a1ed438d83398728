// Package config loads runtime configuration for the keeperbackup CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config or KEEPER_CONFIG.
//  3. Environment variables (KEEPER_*).
//  4. Command-line flags that were set explicitly.
//
// # JSON schema
//
//	{
//	  "db_driver": "sqlite",
//	  "db_dsn": "keeper.db",
//	  "scratch_dir": ".keeperbackup",
//	  "page_size": 500,
//	  "kdf_ops_limit": 2,
//	  "kdf_mem_limit": 67108864,
//	  "log_level": "info"
//	}
//
// Session fields (user_id, client_id, username) are usually read from the
// local database; the config values only override them.
package config
