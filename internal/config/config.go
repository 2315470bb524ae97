package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Paths         []string      `toml:"paths"`
	Exclude       Exclude       `toml:"exclude"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce     time.Duration `toml:"debounce"`
	ChecksPerSec float64       `toml:"checks_per_sec"`
	ChecksBurst  int           `toml:"checks_burst"`
}

type Output struct {
	SARIF    string `toml:"sarif"`
	Markdown string `toml:"markdown"`
	TSV      string `toml:"tsv"`
	DOT      string `toml:"dot"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.ChecksPerSec == 0 {
		cfg.Watch.ChecksPerSec = 20
	}
	if cfg.Watch.ChecksBurst == 0 {
		cfg.Watch.ChecksBurst = 40
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"**/.git", "**/node_modules", "**/vendor"}
	}
}
