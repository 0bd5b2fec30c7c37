package dialect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"csv2ddl/internal/apperrors"
)

// Factory constructs a Dialect.
type Factory func() Dialect

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for name. It is called from
// dialect packages' init functions.
func Register(name string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[name] = fn
}

// New returns the dialect registered under name. Keys are case-sensitive.
func New(name string) (Dialect, error) {
	regMu.RLock()
	fn, ok := factories[name]
	regMu.RUnlock()
	if !ok {
		return nil, &UnsupportedDialectError{Name: name, Supported: Names()}
	}
	return fn(), nil
}

// Names lists the registered dialects in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// UnsupportedDialectError is returned by New for an unknown name.
type UnsupportedDialectError struct {
	Name      string
	Supported []string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported dialect: %q (supported: %s)", e.Name, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedDialectError) Unwrap() error { return apperrors.ErrUnsupportedDialect }
