package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/rowdraw/internal/dataset"
)

// OutputModes lists accepted values of the output key.
var OutputModes = []string{"auto", "text", "markdown", "csv", "json", "yaml"}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputModes, c.OutputFormat) {
		return fmt.Errorf("invalid output %q (expected one of: %s)", c.OutputFormat, strings.Join(OutputModes, ", "))
	}
	if !slices.Contains(dataset.Parsers, dataset.Parser(c.CSV.Parser)) {
		return fmt.Errorf("invalid csv.parser %q (expected naive or rfc4180)", c.CSV.Parser)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log_level %q (expected debug, info, warn or error)", c.LogLevel)
	}
	if c.Sampler.MaxAttempts < 1 {
		return fmt.Errorf("sampler.max_attempts must be at least 1, got %d", c.Sampler.MaxAttempts)
	}
	if c.Picker.Height < 1 {
		return fmt.Errorf("picker.height must be at least 1, got %d", c.Picker.Height)
	}
	return nil
}

// Level returns the slog level for the config; Verbose forces debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	if l, ok := logLevels[c.LogLevel]; ok {
		return l
	}
	return slog.LevelWarn
}
