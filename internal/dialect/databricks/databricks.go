// Package databricks maps inferred types onto Databricks SQL (Spark) types.
package databricks

import (
	"fmt"

	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
)

// Name is the registry key.
const Name = "databricks"

var limits = dialect.Limits{MaxPrecision: 38, MaxScale: 37, MaxVarchar: 65535}

var ladder = []dialect.Rung{
	{Digits: 3, Type: "TINYINT"},
	{Digits: 5, Type: "SMALLINT"},
	{Digits: 9, Type: "INT"},
	{Digits: 18, Type: "BIGINT"},
}

// ANSI-mode reserved keywords.
var reserved = dialect.NewReserved(dialect.CommonReserved, []string{
	"anti", "array", "authorization", "both", "cast", "collate",
	"constraint", "cross", "cube", "current_date", "current_timestamp",
	"current_user", "except", "false", "fetch", "filter", "for", "foreign",
	"full", "grant", "inner", "intersect", "interval", "lateral", "left",
	"map", "minus", "natural", "outer", "over", "partition", "range",
	"references", "right", "rollup", "semi", "struct", "to", "true", "with",
})

func init() {
	dialect.Register(Name, func() dialect.Dialect { return New() })
}

// Dialect is the Databricks type mapper.
type Dialect struct{ dialect.Base }

// New returns the Databricks dialect.
func New() *Dialect {
	return &Dialect{Base: dialect.NewBase(Name, limits, reserved)}
}

// MapType implements dialect.Dialect.
func (d *Dialect) MapType(t infer.Type) string {
	switch t.Kind {
	case infer.KindDate:
		return "DATE"
	case infer.KindInteger:
		if typ, ok := dialect.PickInteger(ladder, t.Precision); ok {
			return typ
		}
		return fmt.Sprintf("DECIMAL(%d, 0)", min(t.Precision, limits.MaxPrecision))
	case infer.KindFloat:
		p, s := dialect.ClampDecimal(t.Precision, t.Scale, limits)
		return dialect.Decimal("DECIMAL", p, s)
	case infer.KindString:
		return dialect.Varchar("VARCHAR", t.MaxLength, limits, "STRING")
	default:
		return "STRING"
	}
}
