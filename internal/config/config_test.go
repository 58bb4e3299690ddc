package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Store.Driver != "memory" {
		t.Errorf("expected memory driver by default, got %q", cfg.Store.Driver)
	}
	if cfg.Discovery.Root != "." {
		t.Errorf("expected root \".\", got %q", cfg.Discovery.Root)
	}
	if cfg.Pool.TaskTimeoutSec != 30 {
		t.Errorf("expected 30s task timeout, got %d", cfg.Pool.TaskTimeoutSec)
	}
}

func TestLoad_MissingFilesFallBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("expected defaults preserved, got %+v", cfg)
	}
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grafema.yaml")
	yamlBody := `
store:
  driver: postgres
  dsn: postgres://localhost/grafema
discovery:
  root: ./src
  include:
    - "**/*.go"
pool:
  size: 8
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != "postgres" || cfg.Store.DSN != "postgres://localhost/grafema" {
		t.Errorf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Discovery.Root != "./src" || len(cfg.Discovery.Include) != 1 {
		t.Errorf("unexpected discovery config: %+v", cfg.Discovery)
	}
	if cfg.Pool.Size != 8 {
		t.Errorf("expected pool size 8, got %d", cfg.Pool.Size)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grafema.yaml")
	if err := os.WriteFile(path, []byte("store:\n  driver: sqlite\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	t.Setenv("GRAFEMA_STORE_DRIVER", "postgres")
	t.Setenv("GRAFEMA_DEBUG", "true")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("expected env override to win, got %q", cfg.Store.Driver)
	}
	if !cfg.Debug {
		t.Error("expected GRAFEMA_DEBUG=true to enable debug mode")
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("GRAFEMA_DISCOVERY_ROOT=/srv/app\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load("", envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Discovery.Root != "/srv/app" {
		t.Errorf("expected .env to set discovery root, got %q", cfg.Discovery.Root)
	}
}
