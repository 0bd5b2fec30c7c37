// Package datasource abstracts where input bytes come from: a local file or
// an HTTP(S) download. Format decoding happens downstream in
// internal/source.
package datasource

import (
	"context"
	"io"
)

// Source yields the raw bytes of one input file.
type Source interface {
	// Open returns a fresh reader over the input. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name is the file name the input is known by (a path or the last URL
	// path segment). Its extension selects the format reader and its stem is
	// the default table name.
	Name() string
}
