package output_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/rowdraw/internal/cli/output"
	"github.com/leapstack-labs/rowdraw/internal/cli/testutil"
	"github.com/leapstack-labs/rowdraw/internal/dataset"
)

func people() output.Subset {
	ds := dataset.New([]string{"name", "age"}, [][]string{
		{"Alice", "30"},
		{"Bob", "25"},
		{"Carol", "041"},
	})
	return output.Subset{
		Title:    "Subset 1 of people.csv",
		Source:   "people.csv",
		Draw:     1,
		Header:   ds.Header(),
		Rows:     []dataset.Row{ds.Row(2), ds.Row(0)},
		Attempts: 1,
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want output.OutputMode
	}{
		{"", output.ModeAuto},
		{"auto", output.ModeAuto},
		{"TEXT", output.ModeText},
		{"markdown", output.ModeMarkdown},
		{"md", output.ModeMarkdown},
		{" csv ", output.ModeCSV},
		{"json", output.ModeJSON},
		{"yaml", output.ModeYAML},
		{"xml", output.ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, output.Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	assert.Equal(t, output.ModeText, testutil.NewTestRenderer(output.ModeAuto, true).EffectiveMode())
	assert.Equal(t, output.ModeMarkdown, testutil.NewTestRendererAuto().EffectiveMode())
	assert.Equal(t, output.ModeJSON, testutil.NewTestRenderer(output.ModeJSON, true).EffectiveMode())
}

func TestRenderSubset_Text(t *testing.T) {
	tr := testutil.NewTestRendererText()
	require.NoError(t, tr.RenderSubset(people()))

	out := testutil.StripANSI(tr.Output())
	assert.Contains(t, out, "Subset 1 of people.csv")
	assert.Contains(t, out, "name")
	assert.NotContains(t, out, "NAME", "headers are printed as in the file")
	assert.Contains(t, out, "Carol")
	assert.Contains(t, out, "041")
	assert.Contains(t, out, "(2 rows)")
	assert.Less(t, strings.Index(out, "Carol"), strings.Index(out, "Alice"), "rows keep subset order")
	assert.NotContains(t, out, output.PerturbedNote)
}

func TestRenderSubset_PerturbedNote(t *testing.T) {
	sub := people()
	sub.Perturbed = true

	text := testutil.NewTestRendererText()
	require.NoError(t, text.RenderSubset(sub))
	assert.Contains(t, testutil.StripANSI(text.Output()), output.PerturbedNote)

	md := testutil.NewTestRendererMarkdown()
	require.NoError(t, md.RenderSubset(sub))
	assert.NotContains(t, md.Output(), output.PerturbedNote)
}

func TestRenderSubset_Markdown(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	require.NoError(t, tr.RenderSubset(people()))

	out := tr.Output()
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "## Subset 1 of people.csv")
	assert.Contains(t, out, "| name")

	rows := testutil.TableRows(out)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "Carol")
	assert.Contains(t, rows[1], "Alice")
}

func TestRenderSubset_CSV(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeCSV, false)
	require.NoError(t, tr.RenderSubset(people()))

	out := tr.Output()
	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "name,age")
	assert.Contains(t, out, "Carol,041")
	assert.Contains(t, out, "Alice,30")
	assert.NotContains(t, out, "Subset 1", "csv output has no title")
}

func TestRenderSubset_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	require.NoError(t, tr.RenderSubset(people()))

	out := tr.Output()
	testutil.AssertNoANSI(t, out)
	assert.Less(t, strings.Index(out, `"name"`), strings.Index(out, `"age"`), "keys follow header order")

	var doc struct {
		Draw    int                 `json:"draw"`
		Source  string              `json:"source"`
		Columns []string            `json:"columns"`
		Rows    []map[string]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Draw)
	assert.Equal(t, "people.csv", doc.Source)
	assert.Equal(t, []string{"name", "age"}, doc.Columns)
	assert.Equal(t, []map[string]string{
		{"name": "Carol", "age": "041"},
		{"name": "Alice", "age": "30"},
	}, doc.Rows)
}

func TestRenderSubset_YAML(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeYAML, false)
	require.NoError(t, tr.RenderSubset(people()))

	var doc struct {
		Draw int                 `yaml:"draw"`
		Rows []map[string]string `yaml:"rows"`
	}
	require.NoError(t, yaml.Unmarshal(tr.Out.Bytes(), &doc))
	assert.Equal(t, 1, doc.Draw)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "041", doc.Rows[0]["age"], "values stay strings")
	assert.Equal(t, "Alice", doc.Rows[1]["name"])
}

func TestRenderSubset_Empty(t *testing.T) {
	empty := output.Subset{Title: "Subset 1 of empty.csv", Header: []string{"name"}}

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		require.NoError(t, tr.RenderSubset(empty))
		assert.Contains(t, testutil.StripANSI(tr.Output()), output.NoDataMessage)
	})

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		require.NoError(t, tr.RenderSubset(empty))
		assert.Contains(t, tr.Output(), output.NoDataMessage)
		assert.Empty(t, testutil.TableRows(tr.Output()))
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRendererJSON()
		require.NoError(t, tr.RenderSubset(empty))
		assert.Contains(t, tr.ErrorOutput(), output.NoDataMessage)
		assert.Contains(t, tr.Output(), `"rows": []`)
	})

	t.Run("csv", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeCSV, false)
		require.NoError(t, tr.RenderSubset(empty))
		assert.Empty(t, tr.Output())
		assert.Contains(t, tr.ErrorOutput(), output.NoDataMessage)
	})
}

func TestRenderer_Messages(t *testing.T) {
	tr := testutil.NewTestRendererAuto()
	tr.Header(1, "Title")
	tr.Success("done")
	tr.Info("note")
	tr.Muted("quiet")
	tr.Warning("careful")
	tr.Error("broken")

	testutil.AssertNoANSI(t, tr.Output()+tr.ErrorOutput())
	assert.Contains(t, tr.Output(), "# Title")
	assert.Contains(t, tr.Output(), "done")
	assert.Contains(t, tr.Output(), "note")
	assert.Contains(t, tr.Output(), "quiet")
	assert.Contains(t, tr.ErrorOutput(), "careful")
	assert.Contains(t, tr.ErrorOutput(), "broken")
	assert.NotContains(t, tr.Output(), "broken")
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "# A", output.FormatHeader(0, "A"))
	assert.Equal(t, "### B", output.FormatHeader(3, "B"))
	assert.Equal(t, "**Rows:** 3", output.FormatKeyValue("Rows", "3"))
}
