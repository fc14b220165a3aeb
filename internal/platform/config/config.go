package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGateAddr    = "127.0.0.1:65432"
	DefaultDurationMin = 25
	DefaultGoalHours   = 8
)

// DefaultCategories is the built-in task-category set. A config file may
// replace it; the list is treated as closed once loaded.
var DefaultCategories = []string{"Maths", "Physics", "ICT", "General"}

type Config struct {
	DataPath    string
	DBPath      string
	PluginsPath string

	GateAddr    string   `yaml:"gate_addr"`
	DurationMin int      `yaml:"default_duration_min"`
	Categories  []string `yaml:"categories"`
}

// New builds the config for a data directory, overlaying an optional
// config.yaml found inside it.
func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	cfg := Config{
		DataPath:    dataPath,
		DBPath:      filepath.Join(dataPath, "focuspro.db"),
		PluginsPath: dataPath,
		GateAddr:    DefaultGateAddr,
		DurationMin: DefaultDurationMin,
		Categories:  append([]string(nil), DefaultCategories...),
	}
	raw, err := os.ReadFile(filepath.Join(dataPath, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config.yaml: %w", err)
	}
	if cfg.GateAddr == "" {
		cfg.GateAddr = DefaultGateAddr
	}
	if cfg.DurationMin < 1 || cfg.DurationMin > 240 {
		return Config{}, fmt.Errorf("default_duration_min must be 1..240, got %d", cfg.DurationMin)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = append([]string(nil), DefaultCategories...)
	}
	return cfg, nil
}
