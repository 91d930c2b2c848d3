// Package config provides configuration management for the rowdraw CLI.
//
// Values are layered with koanf: built-in defaults, then a rowdraw.yaml
// file, then ROWDRAW_ environment variables, then explicitly set flags.
package config

import (
	"github.com/leapstack-labs/rowdraw/internal/dataset"
	"github.com/leapstack-labs/rowdraw/internal/sampler"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool          `koanf:"verbose"`
	LogLevel     string        `koanf:"log_level"`
	OutputFormat string        `koanf:"output"`
	CSV          CSVConfig     `koanf:"csv"`
	Sampler      SamplerConfig `koanf:"sampler"`
	Picker       PickerConfig  `koanf:"picker"`
}

// CSVConfig controls how input files are parsed.
type CSVConfig struct {
	Parser    string `koanf:"parser"`
	TrimSpace bool   `koanf:"trim_space"`
}

// SamplerConfig controls subset drawing.
type SamplerConfig struct {
	MaxAttempts int    `koanf:"max_attempts"`
	Seed        uint64 `koanf:"seed"` // 0 seeds from the clock
}

// PickerConfig controls the interactive file picker.
type PickerConfig struct {
	StartDir string `koanf:"start_dir"`
	Height   int    `koanf:"height"`
}

// Default configuration values.
const (
	DefaultLogLevel     = "warn"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultParser       = string(dataset.ParserNaive)
	DefaultMaxAttempts  = sampler.DefaultMaxAttempts
	DefaultPickerHeight = 12
)

// ConfigFileNames are searched, in order, in the working directory.
var ConfigFileNames = []string{"rowdraw.yaml", "rowdraw.yml"}

// DatasetOptions converts the CSV section into loader options.
func (c *Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		Parser:    dataset.Parser(c.CSV.Parser),
		TrimSpace: c.CSV.TrimSpace,
	}
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
		CSV: CSVConfig{
			Parser:    DefaultParser,
			TrimSpace: true,
		},
		Sampler: SamplerConfig{
			MaxAttempts: DefaultMaxAttempts,
		},
		Picker: PickerConfig{
			StartDir: ".",
			Height:   DefaultPickerHeight,
		},
	}
}
