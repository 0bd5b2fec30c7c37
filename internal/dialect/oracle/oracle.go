// Package oracle maps inferred types onto Oracle Database types.
package oracle

import (
	"fmt"

	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
)

// Name is the registry key.
const Name = "oracle"

var limits = dialect.Limits{MaxPrecision: 38, MaxScale: 37, MaxVarchar: 4000}

var reserved = dialect.NewReserved(dialect.CommonReserved, []string{
	"access", "audit", "char", "cluster", "comment", "compress", "connect",
	"date", "decimal", "exclusive", "file", "float", "grant", "identified",
	"immediate", "increment", "initial", "integer", "intersect", "level",
	"lock", "long", "maxextents", "minus", "mlslabel", "mode", "modify",
	"noaudit", "nocompress", "nowait", "number", "of", "offline", "online",
	"option", "pctfree", "prior", "privileges", "public", "raw", "rename",
	"resource", "revoke", "row", "rowid", "rownum", "rows", "session", "set",
	"share", "size", "smallint", "start", "successful", "synonym", "sysdate",
	"to", "trigger", "uid", "user", "validate", "varchar", "varchar2",
	"whenever", "with",
})

func init() {
	dialect.Register(Name, func() dialect.Dialect { return New() })
}

// Dialect is the Oracle type mapper.
type Dialect struct{ dialect.Base }

// New returns the Oracle dialect.
func New() *Dialect {
	return &Dialect{Base: dialect.NewBase(Name, limits, reserved)}
}

// MapType implements dialect.Dialect. Numerics wider than 38 digits fall
// back to unconstrained NUMBER.
func (d *Dialect) MapType(t infer.Type) string {
	switch t.Kind {
	case infer.KindDate:
		return "DATE"
	case infer.KindInteger:
		if t.Precision > limits.MaxPrecision {
			return "NUMBER"
		}
		return fmt.Sprintf("NUMBER(%d, 0)", max(t.Precision, 1))
	case infer.KindFloat:
		if t.Precision > limits.MaxPrecision {
			return "NUMBER"
		}
		p, s := dialect.ClampDecimal(t.Precision, t.Scale, limits)
		return dialect.Decimal("NUMBER", p, s)
	case infer.KindString:
		return dialect.Varchar("VARCHAR2", t.MaxLength, limits, "CLOB")
	default:
		return "CLOB"
	}
}
