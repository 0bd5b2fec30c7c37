package convert

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type report struct {
	Table   string         `yaml:"table"`
	Dialect string         `yaml:"dialect"`
	Rows    int            `yaml:"rows_sampled"`
	Skipped int            `yaml:"rows_skipped,omitempty"`
	Columns []ColumnReport `yaml:"columns"`
}

// WriteReport writes r's per-column inference details to w as YAML.
func WriteReport(w io.Writer, r *Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report{
		Table:   r.Table,
		Dialect: r.Dialect,
		Rows:    r.Rows,
		Skipped: r.Skipped,
		Columns: r.Columns,
	}); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
