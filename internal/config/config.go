// Package config loads process configuration from the environment, with an
// optional .env file for local development. All variables carry the
// CLINICORE_ prefix.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Storage driver identifiers accepted by CLINICORE_STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	StorageDriver string `mapstructure:"CLINICORE_STORAGE_DRIVER"`
	SQLitePath    string `mapstructure:"CLINICORE_SQLITE_PATH"`
	PostgresDSN   string `mapstructure:"CLINICORE_POSTGRES_DSN"`

	BlobDriver string `mapstructure:"CLINICORE_BLOB_DRIVER"`
	BlobFSRoot string `mapstructure:"CLINICORE_BLOB_FS_ROOT"`

	S3Bucket        string `mapstructure:"CLINICORE_BLOB_S3_BUCKET"`
	S3Region        string `mapstructure:"CLINICORE_BLOB_S3_REGION"`
	S3Endpoint      string `mapstructure:"CLINICORE_BLOB_S3_ENDPOINT"`
	S3AccessKey     string `mapstructure:"CLINICORE_BLOB_S3_ACCESS_KEY"`
	S3SecretKey     string `mapstructure:"CLINICORE_BLOB_S3_SECRET_KEY"`
	S3UsePathStyle  bool   `mapstructure:"CLINICORE_BLOB_S3_PATH_STYLE"`
	S3DisableVerify bool   `mapstructure:"CLINICORE_BLOB_S3_INSECURE_SKIP_VERIFY"`

	LogLevel string `mapstructure:"CLINICORE_LOG_LEVEL"`
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("CLINICORE_STORAGE_DRIVER", DriverSQLite)
	v.SetDefault("CLINICORE_SQLITE_PATH", "clinicore.db")
	v.SetDefault("CLINICORE_BLOB_DRIVER", "memory")
	v.SetDefault("CLINICORE_LOG_LEVEL", "info")

	for _, key := range []string{
		"CLINICORE_STORAGE_DRIVER",
		"CLINICORE_SQLITE_PATH",
		"CLINICORE_POSTGRES_DSN",
		"CLINICORE_BLOB_DRIVER",
		"CLINICORE_BLOB_FS_ROOT",
		"CLINICORE_BLOB_S3_BUCKET",
		"CLINICORE_BLOB_S3_REGION",
		"CLINICORE_BLOB_S3_ENDPOINT",
		"CLINICORE_BLOB_S3_ACCESS_KEY",
		"CLINICORE_BLOB_S3_SECRET_KEY",
		"CLINICORE_BLOB_S3_PATH_STYLE",
		"CLINICORE_BLOB_S3_INSECURE_SKIP_VERIFY",
		"CLINICORE_LOG_LEVEL",
	} {
		_ = v.BindEnv(key)
	}

	// A missing .env file is fine; env vars alone configure production runs.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverPostgres && cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("CLINICORE_POSTGRES_DSN is required for the postgres driver")
	}
	return cfg, nil
}
