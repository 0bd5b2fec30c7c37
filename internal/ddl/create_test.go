package ddl

import (
	"strconv"
	"strings"
	"testing"
)

// reservedSet is a minimal ReservedChecker for tests.
type reservedSet map[string]bool

func (r reservedSet) IsReserved(w string) bool { return r[strings.ToLower(w)] }

var testReserved = reservedSet{"select": true, "date": true, "order": true, "table": true}

// TestBuildCreateTableSQL verifies the rendered statement text and the error
// cases. It uses table-driven subtests so individual scenarios are easy to
// read and extend.
func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		def         TableDef
		wantSQL     string
		wantErr     bool
		errContains string
	}{
		{
			name:        "no columns returns error",
			def:         TableDef{Name: "t"},
			wantErr:     true,
			errContains: "at least one column is required",
		},
		{
			name: "missing SQLType returns error",
			def: TableDef{
				Name:    "t",
				Columns: []ColumnDef{{Name: "id", SQLType: "INT"}, {Name: "note", SQLType: "  "}},
			},
			wantErr:     true,
			errContains: `column "note" missing SQLType`,
		},
		{
			name: "sanitizes, avoids reserved words and uniquifies",
			def: TableDef{
				Name:        "Orders",
				IfNotExists: true,
				Columns: []ColumnDef{
					{Name: "Order Date", SQLType: "DATE"},
					{Name: "order date", SQLType: "DATE"},
					{Name: "Select", SQLType: "VARCHAR(10)"},
				},
			},
			wantSQL: "CREATE TABLE IF NOT EXISTS Orders (\n" +
				"  Order_Date DATE,\n" +
				"  order_date_1 DATE,\n" +
				"  Select_col VARCHAR(10)\n" +
				");",
		},
		{
			name: "without IF NOT EXISTS",
			def: TableDef{
				Name:    "t",
				Columns: []ColumnDef{{Name: "id", SQLType: "INTEGER"}},
			},
			wantSQL: "CREATE TABLE t (\n  id INTEGER\n);",
		},
		{
			name: "table name is sanitized but not reserved-checked",
			def: TableDef{
				Name:        "2024 sales (final)",
				IfNotExists: true,
				Columns:     []ColumnDef{{Name: "amount", SQLType: "NUMBER(5, 0)"}},
			},
			wantSQL: "CREATE TABLE IF NOT EXISTS col_2024_sales__final (\n  amount NUMBER(5, 0)\n);",
		},
		{
			name: "reserved table name is kept",
			def: TableDef{
				Name:    "order",
				Columns: []ColumnDef{{Name: "date", SQLType: "DATE"}, {Name: "Date", SQLType: "DATE"}},
			},
			wantSQL: "CREATE TABLE order (\n  date_dt DATE,\n  Date_dt_1 DATE\n);",
		},
		{
			name: "column order is preserved",
			def: TableDef{
				Name: "t",
				Columns: []ColumnDef{
					{Name: "z", SQLType: "A"},
					{Name: "a", SQLType: "B"},
					{Name: "m", SQLType: "C"},
				},
			},
			wantSQL: "CREATE TABLE t (\n  z A,\n  a B,\n  m C\n);",
		},
	}

	for _, tt := range tests {
		tt := tt // capture range variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotSQL, err := BuildCreateTableSQL(tt.def, testReserved)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BuildCreateTableSQL() error = nil, want non-nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("BuildCreateTableSQL() error = %q, want substring %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("BuildCreateTableSQL() unexpected error = %v", err)
			}
			if gotSQL != tt.wantSQL {
				t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", gotSQL, tt.wantSQL)
			}
		})
	}
}

// TestBuildCreateTableSQL_NoDoubleUnderscore mirrors the common header shape
// of words separated by single spaces.
func TestBuildCreateTableSQL_NoDoubleUnderscore(t *testing.T) {
	t.Parallel()

	def := TableDef{Name: "Orders", Columns: []ColumnDef{
		{Name: "Order Date", SQLType: "DATE"},
		{Name: "order date", SQLType: "DATE"},
		{Name: "Select", SQLType: "VARCHAR(10)"},
	}}
	got, err := BuildCreateTableSQL(def, testReserved)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() unexpected error = %v", err)
	}
	if strings.Contains(got, "__") {
		t.Fatalf("BuildCreateTableSQL() = %q contains a double underscore", got)
	}
}

// benchmarkSink keeps the compiler from optimizing away benchmark results.
var benchmarkSink string

// BenchmarkBuildCreateTableSQL_WideTable renders a 512-column table with
// many colliding headers, the worst case for the uniquifier.
func BenchmarkBuildCreateTableSQL_WideTable(b *testing.B) {
	cols := make([]ColumnDef, 0, 512)
	for i := 0; i < 512; i++ {
		cols = append(cols, ColumnDef{Name: "Col " + strconv.Itoa(i%16), SQLType: "TEXT"})
	}
	def := TableDef{Name: "wide", Columns: cols, IfNotExists: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sql, err := BuildCreateTableSQL(def, testReserved)
		if err != nil {
			b.Fatalf("BuildCreateTableSQL() error = %v", err)
		}
		benchmarkSink = sql
	}
}
