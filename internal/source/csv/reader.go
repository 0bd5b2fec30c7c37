// Package csv reads delimited text into a source.Table. Input is decoded
// from the detected (or configured) character set on the fly and never
// buffered beyond the sampled rows.
package csv

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"csv2ddl/internal/apperrors"
	"csv2ddl/internal/infer"
	"csv2ddl/internal/source"

	"go.uber.org/zap"
	"golang.org/x/text/transform"
)

func init() {
	source.Register(".csv", Read)
}

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// logSkipLimit caps per-row skip logging; the total is still counted.
const logSkipLimit = 20

// Read parses r. The first record is the header; up to opts.SampleSize data
// rows follow. Rows wider than the header or with broken quoting are
// skipped, shorter rows are padded with missing cells.
func Read(ctx context.Context, r io.Reader, opts source.Options) (*source.Table, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	log := opts.Logger

	br := bufio.NewReaderSize(r, 64*1024)
	enc, encName, err := resolveEncoding(br, opts.Encoding)
	if err != nil {
		return nil, err
	}
	log.Debug("csv encoding", zap.String("encoding", encName))

	cr := stdcsv.NewReader(transform.NewReader(br, enc.NewDecoder()))
	cr.Comma = opts.Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if err := opts.CheckColumns(len(header)); err != nil {
		return nil, err
	}

	b := source.NewBuilder(header)
	row := make([]infer.Value, 0, len(header))
	for line := 2; b.Rows() < opts.SampleSize; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *stdcsv.ParseError
			if !errors.As(err, &pe) {
				return nil, fmt.Errorf("read csv: %w", err)
			}
			if b.Table().Skipped < logSkipLimit {
				log.Warn("skipping row", zap.Int("line", line), zap.Error(err))
			}
			b.Skip()
			continue
		}
		if len(rec) > len(header) {
			if b.Table().Skipped < logSkipLimit {
				log.Warn("skipping row: too many fields",
					zap.Int("line", line), zap.Int("expected", len(header)), zap.Int("got", len(rec)))
			}
			b.Skip()
			continue
		}

		row = row[:0]
		for _, cell := range rec {
			row = append(row, source.CellValue(cell))
		}
		b.Add(row)
	}

	t := b.Table()
	if t.Rows == 0 {
		return nil, apperrors.ErrEmptySource
	}
	return t, nil
}

// readHeader returns the first well-formed record.
func readHeader(cr *stdcsv.Reader) ([]string, error) {
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil, apperrors.ErrEmptySource
		}
		if err != nil {
			var pe *stdcsv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return nil, fmt.Errorf("read csv header: %w", err)
		}
		header := make([]string, len(rec))
		copy(header, rec)
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], utf8BOM)
		}
		return header, nil
	}
}
