// # internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dora.toml")

	content := `
paths = ["./src", "./lib"]

[search]
mode = "exact"
emit_parts = true
stdlib_extra = ["mycorp"]

[exclude]
dirs = ["build"]
files = ["gen_*.py"]

[output]
color = "never"

[watch]
debounce = 250000000
max_runs_per_second = 5.0

[history]
path = "runs.db"

[observability]
metrics_addr = ":9109"
otlp_endpoint = "localhost:4317"

[packages]
mylib = "Internal shared library"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(cfg.Paths) != 2 || cfg.Paths[0] != "./src" {
		t.Errorf("Paths = %v", cfg.Paths)
	}
	if cfg.Search.Mode != "exact" || !cfg.Search.EmitParts {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if len(cfg.Exclude.Dirs) != 1 || cfg.Exclude.Dirs[0] != "build" {
		t.Errorf("Exclude.Dirs = %v", cfg.Exclude.Dirs)
	}
	if cfg.Output.Color != "never" {
		t.Errorf("Output.Color = %s", cfg.Output.Color)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.MaxRunsPerSecond != 5.0 {
		t.Errorf("Watch.MaxRunsPerSecond = %v", cfg.Watch.MaxRunsPerSecond)
	}
	if cfg.History.Path != "runs.db" {
		t.Errorf("History.Path = %s", cfg.History.Path)
	}
	if cfg.Observability.MetricsAddr != ":9109" {
		t.Errorf("Observability = %+v", cfg.Observability)
	}
	if cfg.Packages["mylib"] != "Internal shared library" {
		t.Errorf("Packages = %v", cfg.Packages)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dora.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(cfg.Paths) != 1 || cfg.Paths[0] != "." {
		t.Errorf("Default paths = %v", cfg.Paths)
	}
	if cfg.Search.Mode != "structural" {
		t.Errorf("Default mode = %s", cfg.Search.Mode)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("Default color = %s", cfg.Output.Color)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Default debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.MaxRunsPerSecond != 2 {
		t.Errorf("Default max runs = %v", cfg.Watch.MaxRunsPerSecond)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("Default exclude dirs missing")
	}
	if cfg.History.Path != "" {
		t.Errorf("History should be off by default, got %s", cfg.History.Path)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing explicit config")
	}
}

func TestLoadMissingDefaultPath(t *testing.T) {
	// With no path given, a missing default file yields the defaults.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Paths) != 1 || cfg.Paths[0] != "." {
		t.Errorf("Default paths = %v", cfg.Paths)
	}
}
