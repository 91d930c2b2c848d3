package prompt

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline", "12\n", "12"},
		{"crlf", "12\r\n", "12"},
		{"no trailing newline", "7", "7"},
		{"empty input", "", ""},
		{"blank line", "\n", ""},
		{"keeps inner spaces", "  3 \n", "  3 "},
		{"first line only", "4\n5\n", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ReadLine(bufio.NewReader(strings.NewReader(tt.input)), &out, SizePrompt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, SizePrompt, out.String())
		})
	}
}

func TestTerminal_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminal(strings.NewReader("3\n"), &out, ".", 10)
	assert.False(t, p.Interactive)

	path, err := p.SelectFile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path, "no picker without a terminal")

	size, err := p.SubsetSize(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "3", size)
	assert.Contains(t, out.String(), "Enter the size of the subset: ")
}

func TestTerminal_SuccessiveAnswers(t *testing.T) {
	p := NewTerminal(strings.NewReader("1\n2\n"), &bytes.Buffer{}, ".", 10)

	first, err := p.SubsetSize(context.Background(), 5)
	require.NoError(t, err)
	second, err := p.SubsetSize(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "1", first)
	assert.Equal(t, "2", second)
}

func TestTerminal_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewTerminal(strings.NewReader("3\n"), &bytes.Buffer{}, ".", 10)
	_, err := p.SubsetSize(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPickerModel_Setup(t *testing.T) {
	m := newPickerModel("/data", 7)
	assert.Equal(t, []string{".csv"}, m.picker.AllowedTypes)
	assert.Equal(t, "/data", m.picker.CurrentDirectory)
	assert.Equal(t, 7, m.picker.Height)
	assert.False(t, m.picker.AutoHeight)
}

func TestPickerModel_QuitKeys(t *testing.T) {
	keys := map[string]tea.KeyMsg{
		"q":      {Type: tea.KeyRunes, Runes: []rune("q")},
		"esc":    {Type: tea.KeyEsc},
		"ctrl+c": {Type: tea.KeyCtrlC},
	}

	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			updated, cmd := newPickerModel(".", 5).Update(key)
			m := updated.(pickerModel)

			assert.True(t, m.quitting)
			assert.Empty(t, m.selected)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestPickerModel_ClearNotice(t *testing.T) {
	m := newPickerModel(".", 5)
	m.notice = "notes.txt is not a CSV file"
	assert.Contains(t, m.View(), "notes.txt is not a CSV file")

	updated, _ := m.Update(clearNoticeMsg{})
	m = updated.(pickerModel)
	assert.Empty(t, m.notice)
	assert.Contains(t, m.View(), "Select a CSV file:")
}

func TestReadlineAnswer_ReadsGivenInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line", "7\n", "7"},
		{"no newline", "3", "3"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readlineAnswer(strings.NewReader(tt.input), new(bytes.Buffer), SizePrompt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
