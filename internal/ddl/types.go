package ddl

// ColumnDef is one column of a table definition.
//
// Name is the raw source header; it is sanitized at render time. SQLType is
// the dialect-mapped type and is emitted verbatim.
type ColumnDef struct {
	Name    string
	SQLType string
}

// TableDef is an ordered column list plus the raw table name. Column order
// is preserved through rendering.
type TableDef struct {
	Name        string
	Columns     []ColumnDef
	IfNotExists bool
}

// ReservedChecker reports whether a word is reserved in the target dialect.
// dialect.Dialect satisfies it.
type ReservedChecker interface {
	IsReserved(word string) bool
}
