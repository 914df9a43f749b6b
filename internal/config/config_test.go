package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	yaml := `
server:
  host: 127.0.0.1
  port: 9090
database:
  host: db.local
  port: 5432
  user: app
  password: secret
  dbname: social
  sslmode: disable
redis:
  addr: cache.local:6379
  timeline_ttl_seconds: 45
jwt:
  secret: abc123
log:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Redis.Addr != "cache.local:6379" || cfg.Redis.TimelineTTL != 45 {
		t.Errorf("redis config = %+v", cfg.Redis)
	}
	if cfg.JWT.Secret != "abc123" {
		t.Errorf("jwt secret = %q", cfg.JWT.Secret)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}

	want := "host=db.local port=5432 user=app password=secret dbname=social sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
