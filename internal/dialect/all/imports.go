// Package all wires every built-in dialect into the dialect registry.
//
// It exists purely for side effects: a blank import runs each dialect
// package's init, which registers its factory. Binaries that only need a
// subset can import the individual dialect packages instead.
package all

import (
	_ "csv2ddl/internal/dialect/databricks"
	_ "csv2ddl/internal/dialect/mysql"
	_ "csv2ddl/internal/dialect/oracle"
	_ "csv2ddl/internal/dialect/postgres"
	_ "csv2ddl/internal/dialect/snowflake"
	_ "csv2ddl/internal/dialect/sqlite"
	_ "csv2ddl/internal/dialect/sqlserver"
)
