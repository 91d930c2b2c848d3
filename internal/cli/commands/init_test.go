package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/rowdraw/internal/cli/config"
	"github.com/leapstack-labs/rowdraw/internal/dataset"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			args:      []string{},
			wantFiles: []string{"rowdraw.yaml"},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "rowdraw.yaml"), []byte("existing"), 0600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "rowdraw.yaml"), []byte("existing"), 0600)
			},
			args:      []string{"--force"},
			wantFiles: []string{"rowdraw.yaml"},
		},
		{
			name:      "init example",
			args:      []string{"--example"},
			wantFiles: []string{"rowdraw.yaml", "data/people.csv", "data/quoted.csv"},
		},
		{
			name:      "init into new directory",
			args:      []string{"sub/dir"},
			wantFiles: []string{"sub/dir/rowdraw.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetConfig()
			tmpDir := t.TempDir()
			oldWd, _ := os.Getwd()
			require.NoError(t, os.Chdir(tmpDir))
			defer func() { _ = os.Chdir(oldWd) }()

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "rowdraw initialized!")

			for _, f := range tt.wantFiles {
				_, err := os.Stat(filepath.Join(tmpDir, filepath.FromSlash(f)))
				assert.NoError(t, err, "expected file %q to exist", f)
			}
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
	assert.NotNil(t, cmd.Flags().Lookup("example"), "--example flag should exist")
}

func TestInitCreatesDefaultConfig(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	config.ResetConfig()
	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "rowdraw.yaml", config.GetConfigFileUsed())
	assert.Equal(t, config.Default(), cfg, "generated file restates the defaults")
}

func TestInitExampleDataLoads(t *testing.T) {
	config.ResetConfig()
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--example"})
	require.NoError(t, cmd.Execute())

	people, err := dataset.Load("data/people.csv", dataset.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 6, people.Len())
	assert.Equal(t, 1, people.Stats().Padded)

	quoted, err := dataset.Load("data/quoted.csv", dataset.Options{Parser: dataset.ParserRFC4180, TrimSpace: true})
	require.NoError(t, err)
	name, _ := quoted.Row(0).Get("title")
	assert.Equal(t, "Smith, John", name)
	title, _ := quoted.Row(2).Get("title")
	assert.Equal(t, `A "quoted" word`, title)
}
