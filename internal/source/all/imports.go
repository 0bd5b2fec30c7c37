// Package all registers the CSV and XLSX readers.
package all

import (
	_ "csv2ddl/internal/source/csv"
	_ "csv2ddl/internal/source/xlsx"
)
