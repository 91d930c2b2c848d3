// Package main provides tests for the rowdraw CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/rowdraw/internal/cli"
	"github.com/leapstack-labs/rowdraw/internal/cli/config"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}

	if !strings.Contains(buf.String(), "rowdraw") {
		t.Errorf("version output should contain 'rowdraw', got: %s", buf.String())
	}
}

func TestDrawCommand(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte("name,age\nAlice,30\nBob,25\nCarol,40\n"), 0o600); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}

	cmd := cli.NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"draw", path, "--size", "3", "-o", "csv"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("draw command error = %v", err)
	}

	for _, want := range []string{"name,age", "Alice,30", "Bob,25", "Carol,40"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("draw output should contain %q, got: %s", want, out.String())
		}
	}
}
