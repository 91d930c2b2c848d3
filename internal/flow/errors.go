package flow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/rowdraw/internal/dataset"
	"github.com/leapstack-labs/rowdraw/internal/sampler"
)

// Input errors. Together with dataset.ErrUnreadable and
// sampler.ErrSizeOutOfRange they make up every way a run can fail.
var (
	ErrNoFileSelected = errors.New("no file selected")
	ErrNoSizeEntered  = errors.New("no subset size entered")
	ErrInvalidSize    = errors.New("invalid subset size")
)

// Error records the stage a run failed in.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the text shown to the user for a run failure.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNoFileSelected):
		return "No file selected. Exiting..."
	case errors.Is(err, dataset.ErrUnreadable):
		return "Failed to read the CSV file. Exiting..."
	case errors.Is(err, ErrNoSizeEntered):
		return "No subset size entered. Exiting..."
	case errors.Is(err, ErrInvalidSize):
		return "Invalid subset size. Please enter a valid number."
	case errors.Is(err, sampler.ErrSizeOutOfRange):
		var re *sampler.RangeError
		if errors.As(err, &re) {
			return fmt.Sprintf("Please enter a valid subset size between 1 and %d", re.Rows)
		}
		return "Please enter a valid subset size."
	default:
		var fe *Error
		if errors.As(err, &fe) {
			return fe.Err.Error()
		}
		return err.Error()
	}
}

// ParseSize turns raw user input into a subset size for a dataset of n rows.
func ParseSize(input string, n int) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrNoSizeEntered
	}
	size, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	if err := sampler.CheckSize(size, n); err != nil {
		return 0, err
	}
	return size, nil
}
