package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
version: "1.0"
mode: dev
http:
  addr: ":9090"
database:
  host: 127.0.0.1
  port: 3306
  user: gms
  password: secret
  dbname: gms
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Mode != "dev" {
		t.Errorf("mode = %s, want dev", cfg.Mode)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("addr = %s, want :9090", cfg.HTTP.Addr)
	}
	if cfg.DB.Host != "127.0.0.1" || cfg.DB.Port != 3306 || cfg.DB.DBName != "gms" {
		t.Errorf("unexpected db config: %+v", cfg.DB)
	}
}

func TestLoadConfigDefaultAddr(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("mode: release\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %s, want :8080 default", cfg.HTTP.Addr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
