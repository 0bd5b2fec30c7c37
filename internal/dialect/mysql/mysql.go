// Package mysql maps inferred types onto MySQL types.
package mysql

import (
	"fmt"

	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
)

// Name is the registry key.
const Name = "mysql"

var limits = dialect.Limits{MaxPrecision: 65, MaxScale: 30, MaxVarchar: 65535}

var ladder = []dialect.Rung{
	{Digits: 3, Type: "TINYINT"},
	{Digits: 5, Type: "SMALLINT"},
	{Digits: 10, Type: "INT"},
	{Digits: 19, Type: "BIGINT"},
}

var reserved = dialect.NewReserved(dialect.CommonReserved, []string{
	"accessible", "before", "both", "call", "cascade", "change", "condition",
	"database", "databases", "dec", "declare", "delayed", "div", "dual",
	"each", "enclosed", "escaped", "exit", "explain", "fetch", "for", "force",
	"foreign", "fulltext", "grant", "if", "ignore", "interval", "key", "keys",
	"kill", "leading", "leave", "limit", "lines", "load", "lock", "long",
	"loop", "match", "mod", "natural", "outfile", "procedure", "purge",
	"range", "read", "references", "regexp", "rename", "repeat", "replace",
	"require", "restrict", "return", "revoke", "rlike", "schema", "separator",
	"show", "spatial", "sql", "ssl", "starting", "straight_join",
	"terminated", "to", "trailing", "trigger", "undo", "unlock", "unsigned",
	"usage", "use", "utc_date", "while", "with", "write", "xor", "year_month",
	"zerofill",
})

func init() {
	dialect.Register(Name, func() dialect.Dialect { return New() })
}

// Dialect is the MySQL type mapper.
type Dialect struct{ dialect.Base }

// New returns the MySQL dialect.
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
		return dialect.Varchar("VARCHAR", t.MaxLength, limits, "TEXT")
	default:
		return "TEXT"
	}
}
