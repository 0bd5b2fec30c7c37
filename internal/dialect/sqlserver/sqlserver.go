// Package sqlserver maps inferred types onto Microsoft SQL Server types.
//
// TINYINT is unsigned (0..255) on SQL Server, so the integer ladder starts at
// SMALLINT to keep negative values representable.
package sqlserver

import (
	"fmt"

	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
)

// Name is the registry key.
const Name = "sqlserver"

var limits = dialect.Limits{MaxPrecision: 38, MaxScale: 37, MaxVarchar: 4000}

var ladder = []dialect.Rung{
	{Digits: 5, Type: "SMALLINT"},
	{Digits: 9, Type: "INT"},
	{Digits: 18, Type: "BIGINT"},
}

var reserved = dialect.NewReserved(dialect.CommonReserved, []string{
	"backup", "begin", "break", "browse", "bulk", "cascade", "checkpoint",
	"close", "clustered", "commit", "compute", "constraint", "contains",
	"continue", "cross", "cursor", "database", "dbcc", "deallocate",
	"declare", "deny", "disk", "distributed", "double", "dump", "end",
	"errlvl", "escape", "except", "exec", "execute", "exit", "external",
	"fetch", "file", "fillfactor", "for", "foreign", "freetext", "function",
	"goto", "grant", "holdlock", "identity", "if", "is", "key", "kill",
	"merge", "national", "nocheck", "nonclustered", "of", "off", "offsets",
	"open", "option", "over", "percent", "pivot", "plan", "print", "proc",
	"procedure", "public", "raiserror", "read", "reconfigure", "references",
	"replication", "restore", "restrict", "return", "revert", "revoke",
	"rollback", "rowcount", "rule", "save", "schema", "session_user", "set",
	"setuser", "shutdown", "some", "statistics", "system_user",
	"tablesample", "textsize", "top", "tran", "transaction", "trigger",
	"truncate", "tsequal", "unpivot", "updatetext", "use", "user", "varying",
	"waitfor", "while", "with", "writetext",
})

func init() {
	dialect.Register(Name, func() dialect.Dialect { return New() })
}

// Dialect is the SQL Server type mapper.
type Dialect struct{ dialect.Base }

// New returns the SQL Server dialect.
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
		return dialect.Varchar("NVARCHAR", t.MaxLength, limits, "NVARCHAR(MAX)")
	default:
		return "NVARCHAR(MAX)"
	}
}
