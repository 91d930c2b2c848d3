package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/rowdraw/internal/cli/output"
	"github.com/leapstack-labs/rowdraw/internal/dataset"
)

// BuildInfo identifies a rowdraw binary.
type BuildInfo struct {
	Version   string   `json:"version" yaml:"version"`
	Commit    string   `json:"commit" yaml:"commit"`
	BuildDate string   `json:"build_date" yaml:"build_date"`
	GoVersion string   `json:"go_version" yaml:"go_version"`
	Parsers   []string `json:"parsers" yaml:"parsers"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the rowdraw version, the commit and date it was built from, and the CSV parsers it supports.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderVersion(NewCommandContext(cmd).Renderer, withRuntime(info))
		},
	}
}

func withRuntime(info BuildInfo) BuildInfo {
	info.GoVersion = runtime.Version()
	info.Parsers = make([]string, len(dataset.Parsers))
	for i, p := range dataset.Parsers {
		info.Parsers[i] = string(p)
	}
	return info
}

func renderVersion(r *output.Renderer, info BuildInfo) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeYAML:
		return r.YAML(info)
	}

	r.Printf("rowdraw v%s\n", info.Version)
	r.Muted("commit " + info.Commit + ", built " + info.BuildDate + " with " + info.GoVersion)
	r.Println("parsers: " + strings.Join(info.Parsers, ", "))
	return nil
}
