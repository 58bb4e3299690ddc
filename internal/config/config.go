// Package config loads Grafema's run configuration from a YAML file
// overlaid with a .env file and process environment variables, the same
// three-tier precedence the teacher's test harness builds on ad hoc
// (db/sqlite_integration_test.go's godotenv.Load() + os.Getenv) but
// promoted here into a first-class, always-loaded ambient concern.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store selects the backend internal/store/gormstore connects to.
type Store struct {
	Driver string `yaml:"driver"` // "sqlite" | "postgres" | "memory"
	DSN    string `yaml:"dsn"`
	Debug  bool   `yaml:"debug"`
}

// Discovery mirrors spec.md §4.6 DISCOVERY phase inputs.
type Discovery struct {
	Root    string   `yaml:"root"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Pool bounds the orchestrator's worker pool (spec.md §4.6: "default =
// logical CPUs, capped at 16").
type Pool struct {
	Size           int `yaml:"size"`
	TaskTimeoutSec int `yaml:"task_timeout_sec"`
}

// Config is the root configuration object, loaded once at CLI startup.
type Config struct {
	Store     Store     `yaml:"store"`
	Discovery Discovery `yaml:"discovery"`
	Pool      Pool      `yaml:"pool"`
	Debug     bool      `yaml:"debug"`
}

// Default returns the zero-config baseline: in-memory store, current
// directory, no size cap override (the orchestrator resolves 0 to
// runtime.NumCPU(), capped at 16).
func Default() Config {
	return Config{
		Store:     Store{Driver: "memory"},
		Discovery: Discovery{Root: "."},
		Pool:      Pool{Size: 0, TaskTimeoutSec: 30},
	}
}

// Load reads path (if non-empty and present) as YAML over the defaults,
// then applies a .env file at envPath (if present) to the process
// environment, then overlays a fixed set of GRAFEMA_* environment
// variables on top of both. Missing files at either path are not errors —
// both layers are optional.
func Load(path, envPath string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRAFEMA_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("GRAFEMA_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("GRAFEMA_DISCOVERY_ROOT"); v != "" {
		cfg.Discovery.Root = v
	}
	if v := os.Getenv("GRAFEMA_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
}
