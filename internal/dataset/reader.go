package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnreadable is wrapped by every error returned from Load and Read.
var ErrUnreadable = errors.New("failed to read the CSV file")

// Parser selects how lines are split into fields.
type Parser string

const (
	// ParserNaive splits each line on every comma. Quoting is not
	// understood, so a quoted field containing a comma becomes two fields.
	ParserNaive Parser = "naive"
	// ParserRFC4180 honours double-quoted fields.
	ParserRFC4180 Parser = "rfc4180"
)

// Parsers lists the accepted parser names.
var Parsers = []Parser{ParserNaive, ParserRFC4180}

// maxLineSize bounds a single line for the naive parser.
const maxLineSize = 16 << 20

// Options controls CSV ingestion.
type Options struct {
	Parser    Parser
	TrimSpace bool
}

// DefaultOptions returns the naive parser with whitespace trimming.
func DefaultOptions() Options {
	return Options{Parser: ParserNaive, TrimSpace: true}
}

// Load reads the CSV file at path.
func Load(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Read(f, opts)
	if err != nil {
		return nil, err
	}
	ds.Path = path
	return ds, nil
}

// Read parses CSV content from r. A leading byte-order mark is removed.
func Read(r io.Reader, opts Options) (*Dataset, error) {
	src := transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	var next func() ([]string, int, error)
	switch opts.Parser {
	case ParserNaive, "":
		next = naiveRecords(src)
	case ParserRFC4180:
		next = quotedRecords(src)
	default:
		return nil, fmt.Errorf("%w: unknown parser %q", ErrUnreadable, opts.Parser)
	}

	header, _, err := next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header line", ErrUnreadable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	b := newBuilder(clean(header, opts.TrimSpace))
	for {
		fields, line, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrUnreadable, line, err)
		}
		b.add(clean(fields, opts.TrimSpace), line)
	}
	return b.dataset(), nil
}

func clean(fields []string, trim bool) []string {
	if !trim {
		return fields
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// naiveRecords yields every line split on commas.
func naiveRecords(r io.Reader) func() ([]string, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	return func() ([]string, int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, line + 1, err
			}
			return nil, line, io.EOF
		}
		line++
		return strings.Split(sc.Text(), ","), line, nil
	}
}

// quotedRecords yields records from encoding/csv with ragged rows allowed.
// Blank lines are skipped by the csv reader.
func quotedRecords(r io.Reader) func() ([]string, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false
	return func() ([]string, int, error) {
		rec, err := cr.Read()
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, perr.Line, err
			}
			return nil, 0, err
		}
		line, _ := cr.FieldPos(0)
		return rec, line, nil
	}
}
