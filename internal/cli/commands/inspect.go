package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/rowdraw/internal/cli/output"
	"github.com/leapstack-labs/rowdraw/internal/dataset"
	"github.com/leapstack-labs/rowdraw/internal/flow"
)

// InspectResult is the json and yaml form of the inspect command's output.
type InspectResult struct {
	Path    string        `json:"path" yaml:"path"`
	Parser  string        `json:"parser" yaml:"parser"`
	Columns []string      `json:"columns" yaml:"columns"`
	Stats   dataset.Stats `json:"stats" yaml:"stats"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.csv>",
		Short: "Show how a CSV file is read",
		Long: `Load a CSV file the same way draw does and report its columns, row count,
and how many lines were padded or cut to fit the header.`,
		Example: `  rowdraw inspect people.csv
  rowdraw inspect people.csv --parser rfc4180 -o json`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"csv"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
}

func runInspect(cmd *cobra.Command, path string) error {
	cc := NewCommandContext(cmd)
	opts := cc.Cfg.DatasetOptions()

	ds, err := dataset.Load(path, opts)
	if err != nil {
		cc.Logger.Error("failed to read csv", "path", path, "error", err)
		cc.Renderer.Error(flow.Message(err))
		return reported(err)
	}

	res := InspectResult{
		Path:    ds.Path,
		Parser:  string(opts.Parser),
		Columns: ds.Header(),
		Stats:   ds.Stats(),
	}
	return renderInspect(cc.Renderer, res)
}

func renderInspect(r *output.Renderer, res InspectResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(res)
	case output.ModeYAML:
		return r.YAML(res)
	case output.ModeCSV:
		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.AppendHeader(table.Row{"path", "parser", "columns", "rows", "padded", "truncated"})
		t.AppendRow(table.Row{
			res.Path, res.Parser, strings.Join(res.Columns, ";"),
			res.Stats.Rows, res.Stats.Padded, res.Stats.Truncated,
		})
		t.RenderCSV()
		return nil
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, res.Path))
		r.Println()
		r.Println(output.FormatKeyValue("Parser", res.Parser))
		r.Println()
		r.Println(output.FormatKeyValue("Rows", strconv.Itoa(res.Stats.Rows)))
		r.Println()
		r.Println(output.FormatKeyValue("Padded lines", strconv.Itoa(res.Stats.Padded)))
		r.Println()
		r.Println(output.FormatKeyValue("Truncated lines", strconv.Itoa(res.Stats.Truncated)))
		r.Println()
		r.Println(output.FormatHeader(2, "Columns"))
		r.Println()
		for i, c := range res.Columns {
			r.Printf("%d. %s\n", i+1, c)
		}
		return nil
	default:
		r.Header(1, res.Path)
		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		t.AppendRows([]table.Row{
			{"Parser", res.Parser},
			{"Columns", strings.Join(res.Columns, ", ")},
			{"Rows", res.Stats.Rows},
			{"Padded lines", res.Stats.Padded},
			{"Truncated lines", res.Stats.Truncated},
		})
		t.Render()
		if res.Stats.Padded > 0 {
			r.Muted(fmt.Sprintf("%d short line(s) were padded with empty values.", res.Stats.Padded))
		}
		return nil
	}
}
