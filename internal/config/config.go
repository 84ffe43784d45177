// Package config manages YAML-based service configuration for relic.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thebtf/relic/pkg/dedupe"
)

// EngineConfig is the tunable part of the dedup engine.
type EngineConfig struct {
	ClusterThreshold    float64         `yaml:"cluster_threshold"`
	SuggestionThreshold float64         `yaml:"suggestion_threshold"`
	MissingFieldPolicy  string          `yaml:"missing_field_policy"`
	Weights             *dedupe.Weights `yaml:"weights"`
}

// Config is the top-level YAML structure.
type Config struct {
	Listen   string       `yaml:"listen"`
	DBPath   string       `yaml:"db_path"`
	LogLevel string       `yaml:"log_level"`
	Engine   EngineConfig `yaml:"engine"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:   "127.0.0.1:7430",
		DBPath:   "relic.db",
		LogLevel: "info",
		Engine: EngineConfig{
			ClusterThreshold:    dedupe.DefaultClusterThreshold,
			SuggestionThreshold: dedupe.DefaultSuggestionThreshold,
			MissingFieldPolicy:  string(dedupe.PolicyIgnore),
		},
	}
}

// Load reads the YAML file at path. A missing file yields the defaults, not
// an error; unset fields fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// EngineOptions converts the engine block to engine options. Unknown policy
// values fall back to the permissive default.
func (c *Config) EngineOptions() dedupe.Options {
	opts := dedupe.Options{
		ClusterThreshold:    c.Engine.ClusterThreshold,
		SuggestionThreshold: c.Engine.SuggestionThreshold,
	}
	if c.Engine.Weights != nil {
		opts.Weights = *c.Engine.Weights
	}
	if c.Engine.MissingFieldPolicy == string(dedupe.PolicyPenalize) {
		opts.Policy = dedupe.PolicyPenalize
	} else {
		opts.Policy = dedupe.PolicyIgnore
	}
	return opts
}
