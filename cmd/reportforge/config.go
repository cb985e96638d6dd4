package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig mirrors the generate flags so a run can be replayed with
// --config instead of repeating them.
type RunConfig struct {
	Template string `yaml:"template"`
	CSV      string `yaml:"csv"`
	Output   string `yaml:"output"`
	Layouts  string `yaml:"layouts,omitempty"`
	Workers  int    `yaml:"workers,omitempty"`
	Quiet    bool   `yaml:"quiet,omitempty"`
}

// loadRunConfig reads a RunConfig from a YAML file.
func loadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// saveRunConfig writes a RunConfig as YAML.
func saveRunConfig(cfg *RunConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
