// Package ddl renders CREATE TABLE statements from an ordered list of
// (raw column name, SQL type) pairs.
//
// Identifiers are never quoted. Instead every name is reduced to
// [A-Za-z0-9_], pushed off the dialect's reserved words and made unique
// case-insensitively, so the output is valid as bare identifiers on every
// supported engine.
package ddl

import (
	"fmt"
	"strings"
)

// Identifiers returns the rendered column identifiers for t, in column
// order: sanitized, reserved-word adjusted and uniquified.
func Identifiers(t TableDef, rc ReservedChecker) []string {
	u := NewUniquifier()
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = u.Add(AvoidReserved(Sanitize(c.Name), rc))
	}
	return out
}

// BuildCreateTableSQL renders t as
//
//	CREATE TABLE [IF NOT EXISTS] <table> (
//	  <col1> <type1>,
//	  <col2> <type2>
//	);
//
// The table name is sanitized but not checked against reserved words or
// uniquified. At least one column is required and every column needs a
// SQLType; there are no other failure modes.
func BuildCreateTableSQL(t TableDef, rc ReservedChecker) (string, error) {
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}
	for _, c := range t.Columns {
		if strings.TrimSpace(c.SQLType) == "" {
			return "", fmt.Errorf("ddl: column %q missing SQLType", c.Name)
		}
	}

	ids := Identifiers(t, rc)
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = ids[i] + " " + strings.TrimSpace(c.SQLType)
	}

	ine := ""
	if t.IfNotExists {
		ine = "IF NOT EXISTS "
	}
	stmt := fmt.Sprintf(
		"CREATE TABLE %s%s (\n  %s\n);",
		ine,
		Sanitize(t.Name),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}
