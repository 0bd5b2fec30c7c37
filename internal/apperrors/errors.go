// Package apperrors holds the sentinel error kinds shared across csv2ddl.
// Callers match them with errors.Is; wrapped errors carry the detail.
package apperrors

import "errors"

var (
	ErrUnsupportedDialect   = errors.New("unsupported dialect")
	ErrInvalidSample        = errors.New("invalid sample")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrTooManyColumns       = errors.New("too many columns")
	ErrEmptySource          = errors.New("file is empty or no data found")
	ErrOutputOutsideWorkdir = errors.New("refusing to write outside the working directory")
)
