package sampler

import "github.com/leapstack-labs/rowdraw/internal/dataset"

// Session threads a dataset, a random source and the previously shown subset
// through consecutive draws. It is not safe for concurrent use.
type Session struct {
	ds    *dataset.Dataset
	src   Source
	opts  Options
	prev  []dataset.Row
	draws int
}

// NewSession starts a session with no previous subset.
func NewSession(ds *dataset.Dataset, src Source, opts Options) *Session {
	return &Session{ds: ds, src: src, opts: opts}
}

// Draws returns how many subsets have been accepted.
func (s *Session) Draws() int { return s.draws }

// Draw produces the next subset and records it as the previous one.
func (s *Session) Draw(size int) (Subset, error) {
	sub, err := Draw(s.src, s.ds, size, s.prev, s.opts)
	if err != nil {
		return Subset{}, err
	}
	s.prev = sub.Rows
	s.draws++
	return sub, nil
}
