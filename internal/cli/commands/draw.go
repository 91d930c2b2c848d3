package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/rowdraw/internal/cli/config"
	"github.com/leapstack-labs/rowdraw/internal/cli/output"
	"github.com/leapstack-labs/rowdraw/internal/cli/prompt"
	"github.com/leapstack-labs/rowdraw/internal/flow"
	"github.com/leapstack-labs/rowdraw/internal/sampler"
)

// DrawOptions holds options for the draw command.
type DrawOptions struct {
	Size  string
	Draws int
}

// NewDrawCommand creates the draw command.
func NewDrawCommand() *cobra.Command {
	opts := &DrawOptions{}

	cmd := &cobra.Command{
		Use:   "draw [file.csv]",
		Short: "Show a random subset of rows from a CSV file",
		Long: `Pick a CSV file, enter a subset size, and see that many rows chosen at random.

Without a file argument an interactive picker opens in picker.start_dir. Without
--size the size is prompted for. With --draws N, N subsets are shown one after
another and no subset repeats the one shown just before it.`,
		Example: `  # Pick a file and enter the size interactively
  rowdraw draw

  # Draw 5 rows from people.csv
  rowdraw draw people.csv --size 5

  # Three consecutive draws as JSON with a fixed seed
  rowdraw draw people.csv -n 2 --draws 3 --seed 42 -o json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"csv"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runDraw(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Size, "size", "n", "", "Subset size (skips the prompt)")
	cmd.Flags().IntVar(&opts.Draws, "draws", 1, "Number of consecutive subsets to show")

	return cmd
}

// newPrompter builds the prompter a draw asks for missing input.
var newPrompter = func(cmd *cobra.Command, cfg *config.Config) flow.Prompter {
	return prompt.NewTerminal(cmd.InOrStdin(), cmd.ErrOrStderr(), cfg.Picker.StartDir, cfg.Picker.Height)
}

func runDraw(cmd *cobra.Command, path string, opts *DrawOptions) error {
	cc := NewCommandContext(cmd)
	logger := cc.Logger.With("session", uuid.NewString())

	if opts.Draws < 1 {
		return fmt.Errorf("--draws must be at least 1, got %d", opts.Draws)
	}

	display := &subsetDisplay{renderer: cc.Renderer, source: path}

	runner := flow.NewRunner(flow.Config{
		Path:    path,
		Size:    opts.Size,
		Draws:   opts.Draws,
		Dataset: cc.Cfg.DatasetOptions(),
		Sampler: sampler.Options{
			MaxAttempts: cc.Cfg.Sampler.MaxAttempts,
			Logger:      logger,
		},
		Source: sampler.NewSource(cc.Cfg.Sampler.Seed),
		Logger: logger,
	}, &sourceTracker{Prompter: newPrompter(cmd, cc.Cfg), display: display}, display)

	if _, err := runner.Run(cmd.Context()); err != nil {
		cc.Renderer.Error(flow.Message(err))
		return reported(err)
	}
	return nil
}

// sourceTracker records the picked file so displays can name it.
type sourceTracker struct {
	flow.Prompter
	display *subsetDisplay
}

func (t *sourceTracker) SelectFile(ctx context.Context) (string, error) {
	path, err := t.Prompter.SelectFile(ctx)
	t.display.source = path
	return path, err
}

// subsetDisplay renders accepted subsets through the command's renderer.
type subsetDisplay struct {
	renderer *output.Renderer
	source   string
}

func (d *subsetDisplay) Display(_ context.Context, sub sampler.Subset, draw int) error {
	if sub.Repeated {
		d.renderer.Warning("Every possible subset matches the previous one; showing it again.")
	}

	title := fmt.Sprintf("Subset %d", draw)
	if d.source != "" {
		title = fmt.Sprintf("Subset %d of %s", draw, filepath.Base(d.source))
	}

	return d.renderer.RenderSubset(output.Subset{
		Title:     title,
		Source:    d.source,
		Draw:      draw,
		Header:    sub.Header(),
		Rows:      sub.Rows,
		Attempts:  sub.Attempts,
		Perturbed: sub.Perturbed,
		Repeated:  sub.Repeated,
	})
}
