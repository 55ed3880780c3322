package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"gatepass/core/metrics"
	"gatepass/gate"
	"gatepass/infra/monitoring"
)

// Config is the root configuration for the gatepass tool.
type Config struct {
	Gate    gate.Config       `json:"gate"`
	History HistoryConfig     `json:"history"`
	Journal JournalConfig     `json:"journal"`
	Metrics metrics.Config    `json:"metrics"`
	Sentry  monitoring.Config `json:"sentry"`
	Watch   WatchConfig       `json:"watch"`
}

// HistoryConfig locates the plate/phone history file.
type HistoryConfig struct {
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *HistoryConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "car_history.yaml"
	}
}

// JournalConfig locates the submission journal database.
type JournalConfig struct {
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *JournalConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "gatepass.db"
	}
}

// WatchConfig controls the periodic refresh-and-register loop.
type WatchConfig struct {
	IntervalMinutes int `json:"interval_minutes"`
}

// SetDefaults applies sane defaults.
func (c *WatchConfig) SetDefaults() {
	if c.IntervalMinutes <= 0 {
		c.IntervalMinutes = 60
	}
}

// Load reads the configuration file (JSON or YAML by extension) and applies
// GP_-prefixed environment overrides, so credentials can stay out of the
// file: GP_GATE__ID maps to gate.id, GP_GATE__PASSWORD to gate.password.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("GP_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "gp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Gate.SetDefaults()
	cfg.History.SetDefaults()
	cfg.Journal.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Watch.SetDefaults()
	if err := cfg.Gate.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
