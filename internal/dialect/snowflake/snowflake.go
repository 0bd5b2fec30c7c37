// Package snowflake maps inferred types onto Snowflake SQL types.
//
// Snowflake has a single exact numeric type, so integers and floats both
// render as NUMBER(p, s).
package snowflake

import (
	"fmt"

	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
)

// Name is the registry key.
const Name = "snowflake"

const defaultType = "VARCHAR(255)"

var limits = dialect.Limits{MaxPrecision: 38, MaxScale: 37, MaxVarchar: 16777216}

var reserved = dialect.NewReserved(dialect.CommonReserved, []string{
	"date", "timestamp", "variant",
	"connect", "increment", "ilike", "lateral", "minus", "qualify",
	"regexp", "rlike", "sample", "start", "tablesample", "trigger",
	"try_cast", "whenever", "with",
})

func init() {
	dialect.Register(Name, func() dialect.Dialect { return New() })
}

// Dialect is the Snowflake type mapper.
type Dialect struct{ dialect.Base }

// New returns the Snowflake dialect.
func New() *Dialect {
	return &Dialect{Base: dialect.NewBase(Name, limits, reserved)}
}

// MapType implements dialect.Dialect.
func (d *Dialect) MapType(t infer.Type) string {
	switch t.Kind {
	case infer.KindDate:
		return "DATE"
	case infer.KindInteger:
		return fmt.Sprintf("NUMBER(%d, 0)", min(max(t.Precision, 1), limits.MaxPrecision))
	case infer.KindFloat:
		p, s := dialect.ClampDecimal(t.Precision, t.Scale, limits)
		return dialect.Decimal("NUMBER", p, s)
	case infer.KindString:
		return dialect.Varchar("VARCHAR", t.MaxLength, limits, "TEXT")
	default:
		return defaultType
	}
}
