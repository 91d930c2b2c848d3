package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// SizePrompt is shown when asking for the subset size.
const SizePrompt = "Enter the size of the subset: "

// Terminal prompts on a terminal with the file picker and readline, or reads
// plain lines when its input is not a terminal.
type Terminal struct {
	Picker      FilePicker
	Interactive bool

	raw io.Reader
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a prompter over in and out. Interactive is set when in
// is a terminal.
func NewTerminal(in io.Reader, out io.Writer, startDir string, height int) *Terminal {
	return &Terminal{
		Picker: FilePicker{
			StartDir: startDir,
			Height:   height,
			In:       in,
			Out:      out,
		},
		Interactive: isTerminal(in),
		raw:         in,
		in:          bufio.NewReader(in),
		out:         out,
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// SelectFile opens the picker. Without a terminal there is nothing to pick
// from, so it reports no selection.
func (t *Terminal) SelectFile(ctx context.Context) (string, error) {
	if !t.Interactive {
		return "", nil
	}
	return t.Picker.Pick(ctx)
}

// SubsetSize asks for the subset size and returns the raw answer.
func (t *Terminal) SubsetSize(ctx context.Context, _ int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.Interactive {
		return readlineAnswer(t.raw, t.out, SizePrompt)
	}
	return ReadLine(t.in, t.out, SizePrompt)
}

// ReadLine writes prompt to out and reads one line from r without its line
// ending. End of input before any text yields an empty answer.
func ReadLine(r *bufio.Reader, out io.Writer, prompt string) (string, error) {
	if out != nil {
		_, _ = fmt.Fprint(out, prompt)
	}
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readlineAnswer reads one line from in with line editing. Interrupt and EOF
// mean no answer. Raw mode is only entered when in is a terminal.
func readlineAnswer(in io.Reader, out io.Writer, prompt string) (string, error) {
	cfg := &readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		HistoryLimit:    -1,
	}
	if in != nil {
		cfg.Stdin = readline.NewCancelableStdin(in)
		if !isTerminal(in) {
			cfg.FuncMakeRaw = func() error { return nil }
			cfg.FuncExitRaw = func() error { return nil }
		}
	}
	if out != nil {
		cfg.Stdout = out
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return line, nil
}
