// Package sqlite maps inferred types onto SQLite storage classes.
//
// SQLite has no native date type and ignores declared lengths, so dates and
// strings are TEXT and numerics carry no parameters.
package sqlite

import (
	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
)

// Name is the registry key.
const Name = "sqlite"

var reserved = dialect.NewReserved(dialect.CommonReserved, []string{
	"abort", "after", "analyze", "attach", "before", "begin", "commit",
	"conflict", "detach", "each", "exclusive", "explain", "fail", "for",
	"if", "ignore", "immediate", "indexed", "instead", "isnull", "limit",
	"offset", "plan", "pragma", "raise", "regexp", "reindex", "release",
	"replace", "restrict", "rollback", "rowid", "vacuum",
})

func init() {
	dialect.Register(Name, func() dialect.Dialect { return New() })
}

// Dialect is the SQLite type mapper.
type Dialect struct{ dialect.Base }

// New returns the SQLite dialect.
func New() *Dialect {
	return &Dialect{Base: dialect.NewBase(Name, dialect.Limits{}, reserved)}
}

// MapType implements dialect.Dialect.
func (d *Dialect) MapType(t infer.Type) string {
	switch t.Kind {
	case infer.KindInteger:
		return "INTEGER"
	case infer.KindFloat:
		return "REAL"
	default:
		// dates are stored as ISO-8601 text
		return "TEXT"
	}
}
