// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package config loads the defaults for the qacct command line tool.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root YAML structure.
//
//	parser:
//	  explicit_stack: true
//	output:
//	  format: text
//	  indent: "    "
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
}

type ParserConfig struct {
	ExplicitStack bool `yaml:"explicit_stack"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // json, text
	Indent string `yaml:"indent"` // indent for json output
}

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatJSON,
			Indent: "  ",
		},
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	switch cfg.Output.Format {
	case FormatJSON, FormatText:
	case "":
		cfg.Output.Format = FormatJSON
	default:
		return nil, fmt.Errorf("output.format: unknown format %q", cfg.Output.Format)
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
