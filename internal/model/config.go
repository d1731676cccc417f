package model

import (
	"runtime"
	"time"
)

// Config holds all settings for an analysis run
type Config struct {
	Analysis    AnalysisConfig    `yaml:"analysis" mapstructure:"analysis"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// AnalysisConfig selects what to extract and from where
type AnalysisConfig struct {
	Folder  string   `yaml:"folder" mapstructure:"folder"`   // Corpus root
	Step    string   `yaml:"step" mapstructure:"step"`       // Step-type key to search for
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // Category names to drop
	Pattern string   `yaml:"pattern" mapstructure:"pattern"` // Glob relative to Folder
}

// ConcurrencyConfig controls parallel document reads
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls the raw document cache shared by filtering and extraction
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls where results go
type OutputConfig struct {
	Path    string `yaml:"path" mapstructure:"path"` // "-" writes to stdout
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Pattern: "**/*.json",
			Exclude: []string{},
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Output: OutputConfig{
			Path: "occurrences.json",
		},
	}
}
