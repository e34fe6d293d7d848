package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageDriver != DriverSQLite {
		t.Fatalf("default driver = %q", cfg.StorageDriver)
	}
	if cfg.SQLitePath != "clinicore.db" {
		t.Fatalf("default sqlite path = %q", cfg.SQLitePath)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default log level = %q", cfg.LogLevel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CLINICORE_STORAGE_DRIVER", DriverMemory)
	t.Setenv("CLINICORE_LOG_LEVEL", "debug")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageDriver != DriverMemory {
		t.Fatalf("driver = %q", cfg.StorageDriver)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CLINICORE_STORAGE_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadPostgresRequiresDSN(t *testing.T) {
	t.Setenv("CLINICORE_STORAGE_DRIVER", DriverPostgres)
	t.Setenv("CLINICORE_POSTGRES_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DSN is empty")
	}
}
