// Package dialect maps inferred column types onto concrete SQL types for a
// target database, and owns each target's reserved-word set.
//
// Every dialect lives in its own subpackage and registers a Factory from its
// init function. Importing csv2ddl/internal/dialect/all enables all of them.
// Adding a dialect means adding one subpackage plus one blank import; callers
// only ever go through New and the Dialect interface.
package dialect

import "csv2ddl/internal/infer"

// Dialect is a target SQL engine. Implementations are immutable and safe for
// concurrent use.
type Dialect interface {
	// Name is the registry key, e.g. "postgres".
	Name() string
	// MapType renders t as a concrete SQL type. It is total: unknown kinds
	// map to the dialect's default text type.
	MapType(t infer.Type) string
	// IsReserved reports whether word, compared case-insensitively, must not
	// be used as a bare identifier.
	IsReserved(word string) bool
	// Limits reports the numeric and character ceilings the mapper clamps to.
	Limits() Limits
}

// Limits are a dialect's sizing ceilings. Zero means "not applicable".
type Limits struct {
	MaxPrecision int
	MaxScale     int
	// MaxVarchar is the longest bounded character type; longer strings
	// degrade to the dialect's large-object text type.
	MaxVarchar int
}

// Base carries the parts every dialect shares. Subpackages embed it and add
// MapType.
type Base struct {
	name     string
	limits   Limits
	reserved Reserved
}

// NewBase returns a Base for the given name, limits and reserved words.
func NewBase(name string, limits Limits, reserved Reserved) Base {
	return Base{name: name, limits: limits, reserved: reserved}
}

func (b Base) Name() string                { return b.name }
func (b Base) Limits() Limits              { return b.limits }
func (b Base) IsReserved(word string) bool { return b.reserved.Contains(word) }

// Reserved exposes the word set, mainly for tests.
func (b Base) Reserved() Reserved { return b.reserved }
