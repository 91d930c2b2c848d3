// Package sampler draws random row subsets that never repeat the previous draw.
//
// A draw picks distinct row indices by rejection sampling and keeps them in
// insertion order. If the resulting rows are structurally identical to the
// previous subset the whole set is redrawn, up to a bounded number of
// attempts. After that a deterministic perturbation replaces or swaps a single
// position, so a draw always terminates.
package sampler

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/leapstack-labs/rowdraw/internal/dataset"
)

// ErrSizeOutOfRange is returned when the requested size is outside [1, n].
var ErrSizeOutOfRange = errors.New("subset size out of range")

// DefaultMaxAttempts is the number of full redraws before falling back to
// perturbation.
const DefaultMaxAttempts = 64

// Source produces uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG source. A zero seed seeds from the clock.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // sign is irrelevant for a seed
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // not security sensitive
}

// Options tunes a draw.
type Options struct {
	// MaxAttempts bounds full redraws; values below 1 use DefaultMaxAttempts.
	MaxAttempts int
	Logger      *slog.Logger
}

func (o Options) maxAttempts() int {
	if o.MaxAttempts < 1 {
		return DefaultMaxAttempts
	}
	return o.MaxAttempts
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Subset is an accepted draw.
type Subset struct {
	Rows    []dataset.Row
	Indices []int
	// Attempts counts full draws made, including the accepted one.
	Attempts int
	// Perturbed is set when every attempt repeated the previous subset and a
	// single replacement or swap produced the result.
	Perturbed bool
	// Repeated is set when no subset different from the previous one exists.
	Repeated bool
}

// Len returns the number of rows in the subset.
func (s Subset) Len() int { return len(s.Rows) }

// Header returns the column order of the first row, or nil for an empty subset.
func (s Subset) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0].Columns()
}

// RangeError reports a size outside [1, Rows]. It matches ErrSizeOutOfRange.
type RangeError struct {
	Size int
	Rows int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("subset size %d out of range [1, %d]", e.Size, e.Rows)
}

// Is reports whether target is ErrSizeOutOfRange.
func (e *RangeError) Is(target error) bool { return target == ErrSizeOutOfRange }

// CheckSize validates size against a dataset of n rows.
func CheckSize(size, n int) error {
	if size < 1 || size > n {
		return &RangeError{Size: size, Rows: n}
	}
	return nil
}

// Draw selects size distinct rows from ds whose ordered content differs from
// prev. An empty prev accepts the first draw.
func Draw(src Source, ds *dataset.Dataset, size int, prev []dataset.Row, opts Options) (Subset, error) {
	n := ds.Len()
	if err := CheckSize(size, n); err != nil {
		return Subset{}, err
	}

	logger := opts.logger()
	limit := opts.maxAttempts()

	var idx []int
	var rows []dataset.Row
	for attempt := 1; attempt <= limit; attempt++ {
		idx = drawIndices(src, n, size)
		rows = materialize(ds, idx)
		if len(prev) == 0 || !dataset.RowsEqual(rows, prev) {
			return Subset{Rows: rows, Indices: idx, Attempts: attempt}, nil
		}
		logger.Debug("draw repeated previous subset", "attempt", attempt, "size", size, "rows", n)
	}

	if alt, ok := perturb(src, ds, idx, prev); ok {
		logger.Debug("perturbed repeated draw", "attempts", limit, "indices", alt)
		return Subset{Rows: materialize(ds, alt), Indices: alt, Attempts: limit, Perturbed: true}, nil
	}

	logger.Warn("no subset differs from the previous one; repeating it", "size", size, "rows", n)
	return Subset{Rows: rows, Indices: idx, Attempts: limit, Repeated: true}, nil
}

// drawIndices rejection-samples size distinct indices from [0, n) in
// insertion order. Raw draws are capped; leftover slots are filled with unused
// indices scanning from a random offset.
func drawIndices(src Source, n, size int) []int {
	picked := make([]int, 0, size)
	used := make([]bool, n)

	for budget := 32*n + 64; len(picked) < size && budget > 0; budget-- {
		i := src.IntN(n)
		if used[i] {
			continue
		}
		used[i] = true
		picked = append(picked, i)
	}

	if len(picked) < size {
		start := src.IntN(n)
		for k := 0; k < n && len(picked) < size; k++ {
			i := (start + k) % n
			if !used[i] {
				used[i] = true
				picked = append(picked, i)
			}
		}
	}
	return picked
}

func materialize(ds *dataset.Dataset, idx []int) []dataset.Row {
	rows := make([]dataset.Row, len(idx))
	for i, j := range idx {
		rows[i] = ds.Row(j)
	}
	return rows
}

// perturb changes a candidate whose rows equal prev position by position.
// It first tries replacing one position with an unused index, then swapping
// two positions, and returns the first variant whose content differs.
func perturb(src Source, ds *dataset.Dataset, idx []int, prev []dataset.Row) ([]int, bool) {
	n := ds.Len()
	used := make([]bool, n)
	for _, i := range idx {
		used[i] = true
	}

	off := src.IntN(n)
	for pos := len(idx) - 1; pos >= 0; pos-- {
		for k := 0; k < n; k++ {
			u := (off + k) % n
			if used[u] || ds.Row(u).Equal(prev[pos]) {
				continue
			}
			alt := append([]int(nil), idx...)
			alt[pos] = u
			return alt, true
		}
	}

	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			if prev[i].Equal(prev[j]) {
				continue
			}
			alt := append([]int(nil), idx...)
			alt[i], alt[j] = alt[j], alt[i]
			return alt, true
		}
	}

	return nil, false
}
