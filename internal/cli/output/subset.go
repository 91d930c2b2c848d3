package output

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/rowdraw/internal/dataset"
)

// NoDataMessage is shown in place of an empty subset.
const NoDataMessage = "No data to display."

// PerturbedNote follows a text subset that was changed by the fallback
// after every redraw matched the previous subset.
const PerturbedNote = "Adjusted so this subset differs from the previous one."

// Subset describes one accepted draw for rendering.
type Subset struct {
	Title     string
	Source    string
	Draw      int
	Header    []string
	Rows      []dataset.Row
	Attempts  int
	Perturbed bool
	Repeated  bool
}

// subsetDoc is the json form of a Subset.
type subsetDoc struct {
	Draw      int           `json:"draw"`
	Source    string        `json:"source,omitempty"`
	Columns   []string      `json:"columns"`
	Rows      []dataset.Row `json:"rows"`
	Attempts  int           `json:"attempts"`
	Perturbed bool          `json:"perturbed,omitempty"`
	Repeated  bool          `json:"repeated,omitempty"`
}

// subsetYAML is the yaml form of a Subset. Rows are built as nodes to keep
// header order and to quote every value as a string.
type subsetYAML struct {
	Draw      int        `yaml:"draw"`
	Source    string     `yaml:"source,omitempty"`
	Columns   []string   `yaml:"columns"`
	Rows      *yaml.Node `yaml:"rows"`
	Attempts  int        `yaml:"attempts"`
	Perturbed bool       `yaml:"perturbed,omitempty"`
	Repeated  bool       `yaml:"repeated,omitempty"`
}

// RenderSubset writes s in the effective output mode.
func (r *Renderer) RenderSubset(s Subset) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		if len(s.Rows) == 0 {
			r.Warning(NoDataMessage)
		}
		return r.JSON(subsetDoc{
			Draw:      s.Draw,
			Source:    s.Source,
			Columns:   nonNil(s.Header),
			Rows:      nonNilRows(s.Rows),
			Attempts:  s.Attempts,
			Perturbed: s.Perturbed,
			Repeated:  s.Repeated,
		})
	case ModeYAML:
		if len(s.Rows) == 0 {
			r.Warning(NoDataMessage)
		}
		return r.YAML(subsetYAML{
			Draw:      s.Draw,
			Source:    s.Source,
			Columns:   nonNil(s.Header),
			Rows:      rowsNode(s.Rows),
			Attempts:  s.Attempts,
			Perturbed: s.Perturbed,
			Repeated:  s.Repeated,
		})
	case ModeCSV:
		if len(s.Rows) == 0 {
			r.Warning(NoDataMessage)
			return nil
		}
		r.newTable(s.Header, s.Rows).RenderCSV()
		return nil
	case ModeMarkdown:
		if s.Title != "" {
			r.Println(FormatHeader(2, s.Title))
			r.Println()
		}
		if len(s.Rows) == 0 {
			r.Println(NoDataMessage)
			return nil
		}
		r.newTable(s.Header, s.Rows).RenderMarkdown()
		r.Println()
		return nil
	default:
		if s.Title != "" {
			r.Println(r.styles.Header.Render(s.Title))
		}
		if len(s.Rows) == 0 {
			r.Muted(NoDataMessage)
			return nil
		}
		r.newTable(s.Header, s.Rows).Render()
		r.Muted(rowCount(len(s.Rows)))
		if s.Perturbed {
			r.Info(PerturbedNote)
		}
		return nil
	}
}

// newTable builds a go-pretty table mirrored to the primary output.
// Header cells are printed as they appear in the file.
func (r *Renderer) newTable(header []string, rows []dataset.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	hdr := make(table.Row, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	t.AppendHeader(hdr)

	for _, row := range rows {
		values := row.Values()
		tr := make(table.Row, len(values))
		for i, v := range values {
			tr[i] = v
		}
		t.AppendRow(tr)
	}
	return t
}

func rowCount(n int) string {
	if n == 1 {
		return "(1 row)"
	}
	return "(" + strconv.Itoa(n) + " rows)"
}

func rowsNode(rows []dataset.Row) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, row := range rows {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		values := row.Values()
		for i, col := range row.Columns() {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values[i]},
			)
		}
		seq.Content = append(seq.Content, m)
	}
	return seq
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilRows(rows []dataset.Row) []dataset.Row {
	if rows == nil {
		return []dataset.Row{}
	}
	return rows
}
