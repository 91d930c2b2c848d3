package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/rowdraw/internal/cli/config"
	"github.com/leapstack-labs/rowdraw/internal/cli/output"
	"github.com/spf13/cobra"
)

// ErrReported marks an error whose message was already shown to the user.
var ErrReported = errors.New("error already reported")

// reported wraps err so callers can skip printing it again.
func reported(err error) error {
	return fmt.Errorf("%w: %w", ErrReported, err)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise loads file and
// environment settings, falling back to defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	if cfg, err := config.LoadConfig("", nil); err == nil {
		return cfg
	}
	return config.Default()
}
