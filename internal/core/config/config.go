// Package config handles configuration loading and validation for quill.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/quill/internal/core/annotate"
)

// Config holds the application configuration.
type Config struct {
	Theme     string          `yaml:"theme"`
	Documents DocumentsConfig `yaml:"documents"`
	Annotate  AnnotateConfig  `yaml:"annotate"`
	Report    ReportConfig    `yaml:"report"`
	DataDir   string          `yaml:"-"` // set by caller, not from config file
}

// DocumentsConfig controls document discovery for `quill ls`.
type DocumentsConfig struct {
	// Patterns are doublestar globs matched against paths relative to
	// the listed directory.
	Patterns []string `yaml:"patterns"`
}

// AnnotateConfig controls annotation workflow defaults.
type AnnotateConfig struct {
	// DefaultSeverity seeds the severity picker for each new
	// annotation: must-fix, should-fix or consider.
	DefaultSeverity string `yaml:"default_severity"`
}

// ReportConfig controls export output.
type ReportConfig struct {
	// Filename is the default report name written under the data dir.
	Filename string `yaml:"filename"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "tokyo-night",
		Documents: DocumentsConfig{
			Patterns: []string{"**/*.md", "**/*.txt"},
		},
		Annotate: AnnotateConfig{
			DefaultSeverity: string(annotate.SeverityShouldFix),
		},
		Report: ReportConfig{
			Filename: "report.md",
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. The dataDir is carried on the returned config for
// components that need it.
func Load(path, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}

	return &cfg, nil
}

// DefaultSeverity returns the configured severity as its typed form.
func (c *Config) DefaultSeverity() annotate.Severity {
	return annotate.Severity(c.Annotate.DefaultSeverity)
}
