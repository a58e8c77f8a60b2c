// # internal/config/config.go
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Paths         []string          `toml:"paths"`
	Search        Search            `toml:"search"`
	Exclude       Exclude           `toml:"exclude"`
	Output        Output            `toml:"output"`
	Watch         Watch             `toml:"watch"`
	History       History           `toml:"history"`
	Observability Observability     `toml:"observability"`
	Packages      map[string]string `toml:"packages"`
}

type Search struct {
	Mode        string   `toml:"mode"`
	EmitParts   bool     `toml:"emit_parts"`
	StdlibExtra []string `toml:"stdlib_extra"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Output struct {
	Color string `toml:"color"` // auto, always, never
}

type Watch struct {
	Debounce         time.Duration `toml:"debounce"`
	MaxRunsPerSecond float64       `toml:"max_runs_per_second"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// DefaultPath is the config file looked up when -config is not given.
const DefaultPath = "dora.toml"

// Load reads a toml config and fills defaults. A missing file at the default
// path yields the defaults; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if cfg.Search.Mode == "" {
		cfg.Search.Mode = "structural"
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "__pycache__", ".venv", "venv", "node_modules"}
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.MaxRunsPerSecond == 0 {
		cfg.Watch.MaxRunsPerSecond = 2
	}
}
