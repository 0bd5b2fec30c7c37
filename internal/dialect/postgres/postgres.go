// Package postgres maps inferred types onto PostgreSQL types.
package postgres

import (
	"fmt"

	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
)

// Name is the registry key.
const Name = "postgres"

// NUMERIC accepts up to 1000 declared digits; VARCHAR up to 10485760
// characters.
var limits = dialect.Limits{MaxPrecision: 1000, MaxScale: 1000, MaxVarchar: 10485760}

var ladder = []dialect.Rung{
	{Digits: 5, Type: "SMALLINT"},
	{Digits: 9, Type: "INTEGER"},
	{Digits: 18, Type: "BIGINT"},
}

var reserved = dialect.NewReserved(dialect.CommonReserved, []string{
	"analyse", "analyze", "array", "both", "cast", "collate", "constraint",
	"current_catalog", "current_date", "current_role", "current_time",
	"current_timestamp", "current_user", "deferrable", "do", "end", "except",
	"false", "fetch", "for", "foreign", "grant", "initially", "intersect",
	"lateral", "leading", "limit", "localtime", "localtimestamp", "offset",
	"only", "placing", "references", "returning", "session_user", "some",
	"symmetric", "trailing", "true", "user", "variadic", "window", "with",
})

func init() {
	dialect.Register(Name, func() dialect.Dialect { return New() })
}

// Dialect is the PostgreSQL type mapper.
type Dialect struct{ dialect.Base }

// New returns the PostgreSQL dialect.
func New() *Dialect {
	return &Dialect{Base: dialect.NewBase(Name, limits, reserved)}
}

// MapType implements dialect.Dialect. Requests wider than NUMERIC's declared
// maximum degrade to unconstrained NUMERIC.
func (d *Dialect) MapType(t infer.Type) string {
	switch t.Kind {
	case infer.KindDate:
		return "DATE"
	case infer.KindInteger:
		if typ, ok := dialect.PickInteger(ladder, t.Precision); ok {
			return typ
		}
		if t.Precision > limits.MaxPrecision {
			return "NUMERIC"
		}
		return fmt.Sprintf("NUMERIC(%d, 0)", t.Precision)
	case infer.KindFloat:
		if t.Precision > limits.MaxPrecision {
			return "NUMERIC"
		}
		p, s := dialect.ClampDecimal(t.Precision, t.Scale, limits)
		return dialect.Decimal("NUMERIC", p, s)
	case infer.KindString:
		return dialect.Varchar("VARCHAR", t.MaxLength, limits, "TEXT")
	default:
		return "TEXT"
	}
}
