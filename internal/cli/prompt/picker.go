// Package prompt collects run inputs from the terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CSVExtensions are the file types the picker lets the user select.
var CSVExtensions = []string{".csv"}

const noticeTimeout = 2 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type clearNoticeMsg struct{}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{} })
}

// pickerModel hosts a filepicker and records the outcome.
type pickerModel struct {
	picker   filepicker.Model
	selected string
	notice   string
	quitting bool
}

func newPickerModel(startDir string, height int) pickerModel {
	fp := filepicker.New()
	fp.AllowedTypes = CSVExtensions
	fp.CurrentDirectory = startDir
	if height > 0 {
		fp.AutoHeight = false
		fp.Height = height
	}
	return pickerModel{picker: fp}
}

func (m pickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case clearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.notice = fmt.Sprintf("%s is not a CSV file", filepath.Base(path))
		return m, tea.Batch(cmd, clearNoticeAfter(noticeTimeout))
	}
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a CSV file:"))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: select • q/esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// FilePicker opens an interactive CSV file picker.
type FilePicker struct {
	StartDir string
	Height   int
	In       io.Reader
	Out      io.Writer
}

// Pick runs the picker until the user selects a file or quits.
// Quitting or canceling ctx returns an empty path and a nil error.
func (p *FilePicker) Pick(ctx context.Context) (string, error) {
	startDir := p.StartDir
	if startDir == "" {
		startDir = "."
	}
	if abs, err := filepath.Abs(startDir); err == nil {
		startDir = abs
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(newPickerModel(startDir, p.Height), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", nil
		}
		return "", fmt.Errorf("file picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok {
		return "", nil
	}
	return m.selected, nil
}
