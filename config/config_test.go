package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults when nothing is set", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Storage.Driver != StorageDriverJSON || cfg.Storage.DataFile != "habits.json" {
			t.Errorf("unexpected storage defaults: %+v", cfg.Storage)
		}
		if cfg.Redis.Enabled {
			t.Error("expected redis disabled by default")
		}
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, writeConfigFile(t, `
storage:
  driver: sqlite
  sqlite_path: /tmp/h.db
redis:
  enabled: true
  ttl: 30s
log:
  format: text
`))

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Storage.Driver != StorageDriverSQLite || cfg.Storage.SQLitePath != "/tmp/h.db" {
			t.Errorf("unexpected storage: %+v", cfg.Storage)
		}
		if !cfg.Redis.Enabled || cfg.Redis.TTL != 30*time.Second {
			t.Errorf("unexpected redis: %+v", cfg.Redis)
		}
		if cfg.Server.Port != 8080 {
			t.Errorf("expected untouched default port, got %d", cfg.Server.Port)
		}
	})

	t.Run("environment wins over yaml file", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, writeConfigFile(t, "storage:\n  driver: sqlite\nserver:\n  port: 9000\n"))
		t.Setenv("STORAGE_DRIVER", "POSTGRES")
		t.Setenv("SERVER_PORT", "9100")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Storage.Driver != StorageDriverPostgres {
			t.Errorf("expected postgres, got %s", cfg.Storage.Driver)
		}
		if cfg.Server.Port != 9100 {
			t.Errorf("expected port 9100, got %d", cfg.Server.Port)
		}
	})

	t.Run("malformed env values fall back", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "")
		t.Setenv("SERVER_PORT", "not-a-number")
		t.Setenv("REDIS_STREAK_TTL", "soon")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Port != 8080 || cfg.Redis.TTL != 10*time.Minute {
			t.Errorf("expected defaults, got port=%d ttl=%s", cfg.Server.Port, cfg.Redis.TTL)
		}
	})

	t.Run("unknown storage driver is rejected", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "")
		t.Setenv("STORAGE_DRIVER", "mongo")

		if _, err := Load(); err == nil {
			t.Error("expected error for unknown driver")
		}
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

		if _, err := Load(); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
