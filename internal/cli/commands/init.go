package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/rowdraw/internal/cli/config"
	"github.com/leapstack-labs/rowdraw/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a rowdraw.yaml configuration file",
		Long: `Create a rowdraw.yaml with every setting at its default value.

Use --example to also add a data/ directory with sample CSV files, including
one with short lines and one that needs the rfc4180 parser.`,
		Example: `  # Initialize in current directory
  rowdraw init

  # Initialize with sample data
  rowdraw init --example

  # Force overwrite existing config
  rowdraw init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cc := NewCommandContext(cmd)
			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(cc.Renderer, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Add sample CSV files")

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileNames[0])
	}

	if err := copyTemplate(template, dir, force); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	files, err := listTemplateFiles(template)
	if err != nil {
		return err
	}
	groups := groupTemplateFiles(files)

	r.Header(2, "Configuration")
	for _, f := range groups["config"] {
		r.StatusLine(f, "success", "")
	}
	if len(groups["data"]) > 0 {
		r.Println("")
		r.Header(2, "Data")
		for _, f := range groups["data"] {
			r.StatusLine(f, "success", "")
		}
	}

	r.Println("")
	r.Success("rowdraw initialized!")
	r.Println("")
	r.Println("Next steps:")
	if len(groups["data"]) > 0 {
		r.Println("  rowdraw inspect data/people.csv    See how the sample file is read")
		r.Println("  rowdraw draw data/people.csv -n 3  Draw three random rows")
	} else {
		r.Println("  rowdraw draw                       Pick a CSV file and draw rows")
	}

	return nil
}
