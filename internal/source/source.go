// Package source turns an input file into a Table: ordered column names plus
// one value sequence per column. Format readers (CSV, XLSX) live in
// subpackages and register themselves by file extension; import
// csv2ddl/internal/source/all to enable every built-in reader.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"csv2ddl/internal/apperrors"
	"csv2ddl/internal/datasource"
	"csv2ddl/internal/datasource/file"
	"csv2ddl/internal/datasource/httpds"
	"csv2ddl/internal/infer"

	"go.uber.org/zap"
)

const (
	// MaxSampleRows bounds how many data rows are ever read.
	MaxSampleRows = 50000
	// DefaultMaxColumns is the column ceiling when Options.MaxColumns is 0.
	DefaultMaxColumns = 512
)

// Table is a column-major view of the sampled rows.
type Table struct {
	// Name is the input's file name without directory or extension; it is
	// the default table name.
	Name    string
	Names   []string
	Columns [][]infer.Value
	// Rows is the number of data rows kept.
	Rows int
	// Skipped counts malformed or over-wide rows that were dropped.
	Skipped int
}

// Options control reading. The zero value reads a comma-delimited CSV with
// detected encoding, the first sheet of a workbook, and up to MaxSampleRows
// rows.
type Options struct {
	Delimiter rune
	// Encoding names the CSV character set (WHATWG or IANA name). Empty
	// means detect.
	Encoding string
	// Sheet selects the workbook sheet. Empty means the first sheet.
	Sheet string
	// SampleSize is the number of data rows to read. Zero means
	// MaxSampleRows; larger values are clamped to it; negative is invalid.
	SampleSize int
	// MaxColumns aborts wider inputs. Zero means DefaultMaxColumns.
	MaxColumns int

	// HTTP configures downloads for http(s) locations.
	HTTP     httpds.Config
	MaxBytes int64

	Logger *zap.Logger
}

// Normalize validates o and fills defaults.
func (o Options) Normalize() (Options, error) {
	if o.SampleSize < 0 {
		return o, fmt.Errorf("%w: sample size must be positive when provided, got %d",
			apperrors.ErrInvalidSample, o.SampleSize)
	}
	if o.SampleSize == 0 || o.SampleSize > MaxSampleRows {
		o.SampleSize = MaxSampleRows
	}
	if o.MaxColumns < 0 {
		return o, fmt.Errorf("max columns must not be negative, got %d", o.MaxColumns)
	}
	if o.MaxColumns == 0 {
		o.MaxColumns = DefaultMaxColumns
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Delimiter == '"' || o.Delimiter == '\r' || o.Delimiter == '\n' ||
		o.Delimiter == utf8.RuneError || !utf8.ValidRune(o.Delimiter) {
		return o, fmt.Errorf("invalid delimiter %q", o.Delimiter)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o, nil
}

// CheckColumns fails when n exceeds the configured ceiling.
func (o Options) CheckColumns(n int) error {
	if n > o.MaxColumns {
		return fmt.Errorf("%w: file contains %d columns which exceeds the allowed maximum of %d",
			apperrors.ErrTooManyColumns, n, o.MaxColumns)
	}
	return nil
}

// Reader decodes one format from r. Options are already normalized.
type Reader func(ctx context.Context, r io.Reader, opts Options) (*Table, error)

var (
	readersMu sync.RWMutex
	readers   = map[string]Reader{}
)

// Register registers (or replaces) the reader for a lowercase file
// extension including the dot, e.g. ".csv".
func Register(ext string, fn Reader) {
	readersMu.Lock()
	defer readersMu.Unlock()
	readers[strings.ToLower(ext)] = fn
}

// Extensions lists the registered extensions in sorted order.
func Extensions() []string {
	readersMu.RLock()
	defer readersMu.RUnlock()
	out := make([]string, 0, len(readers))
	for k := range readers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func readerFor(name string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(name))
	readersMu.RLock()
	fn, ok := readers[ext]
	readersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			apperrors.ErrUnsupportedFileType, ext, strings.Join(Extensions(), ", "))
	}
	return fn, nil
}

// Locate maps a location to a byte source: http(s) URLs download through
// httpds, file:// URLs and plain paths read from disk. A leading "~/"
// expands to the home directory.
func Locate(location string, opts Options) datasource.Source {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return httpds.NewSource(httpds.NewClient(opts.HTTP), location, opts.MaxBytes)
	case strings.HasPrefix(lower, "file://"):
		return file.NewLocal(location[len("file://"):])
	case strings.HasPrefix(location, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return file.NewLocal(filepath.Join(home, location[2:]))
		}
	}
	return file.NewLocal(location)
}

// Open reads the table at location. The format is chosen by extension
// before any I/O happens.
func Open(ctx context.Context, location string, opts Options) (*Table, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	return Read(ctx, Locate(location, opts), opts)
}

// Read decodes src with the reader registered for its extension and
// enforces the column and emptiness checks.
func Read(ctx context.Context, src datasource.Source, opts Options) (*Table, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	read, err := readerFor(src.Name())
	if err != nil {
		return nil, err
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := read(ctx, rc, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	if err := opts.CheckColumns(len(t.Names)); err != nil {
		return nil, err
	}
	if t.Rows == 0 || len(t.Names) == 0 {
		return nil, fmt.Errorf("read %s: %w", src.Name(), apperrors.ErrEmptySource)
	}
	t.Name = Stem(src.Name())

	opts.Logger.Debug("loaded table",
		zap.String("source", src.Name()),
		zap.Int("rows", t.Rows),
		zap.Int("columns", len(t.Names)),
		zap.Int("skipped", t.Skipped))
	return t, nil
}

// Stem returns the base name of p without its extension.
func Stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// naValues are cell texts treated as missing.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// CellValue maps a raw cell to a Value; empty cells and the common
// missing-data markers become Null.
func CellValue(s string) infer.Value {
	if _, ok := naValues[s]; ok {
		return infer.Null()
	}
	return infer.Text(s)
}

// Builder accumulates rows into a column-major Table.
type Builder struct {
	t *Table
}

// NewBuilder starts a table with the given header.
func NewBuilder(names []string) *Builder {
	return &Builder{t: &Table{
		Names:   names,
		Columns: make([][]infer.Value, len(names)),
	}}
}

// Width is the header length.
func (b *Builder) Width() int { return len(b.t.Names) }

// Rows is the number of rows added so far.
func (b *Builder) Rows() int { return b.t.Rows }

// Add appends one row. Rows shorter than the header are padded with
// missing cells; callers must not pass longer rows.
func (b *Builder) Add(row []infer.Value) {
	for i := range b.t.Columns {
		v := infer.Null()
		if i < len(row) {
			v = row[i]
		}
		b.t.Columns[i] = append(b.t.Columns[i], v)
	}
	b.t.Rows++
}

// Skip records a dropped row.
func (b *Builder) Skip() { b.t.Skipped++ }

// Table returns the accumulated table.
func (b *Builder) Table() *Table { return b.t }
