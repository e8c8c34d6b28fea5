// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultHeaderBytes is the length of the variable-assignment prefix the
// recorder writes in front of the JSON array.
const DefaultHeaderBytes = 11

// ConvertConfig holds settings for the convert command.
type ConvertConfig struct {
	// Input is the recording read when no path is given on the command line.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the destination track; empty or "-" means stdout.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// OutDir receives one .vtt file per input in batch mode.
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// HeaderBytes is the number of leading bytes skipped before the JSON
	// array (default 11).
	HeaderBytes int `json:"header_bytes" yaml:"header_bytes" mapstructure:"header_bytes"`

	// Strict rejects recordings whose event times go backwards.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

// CatalogConfig holds settings for the recording catalogue.
type CatalogConfig struct {
	// Dir contains the catalogue database and its exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// LoggingConfig controls diagnostic output. Logs are written to stderr
// unless Path is set, in which case the file is rotated by size.
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level" mapstructure:"level"`
	Path       string `json:"path" yaml:"path" mapstructure:"path"`
	MaxSize    int    `json:"max_size" yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `json:"compress" yaml:"compress" mapstructure:"compress"`
}

// Config groups all settings read from slidevtt.yaml and the environment.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
}
