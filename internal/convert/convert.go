// Package convert runs one conversion: read a table, infer a type per
// column, map the types to a dialect and render CREATE TABLE. Each stage
// is timed through the metrics package.
package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"csv2ddl/internal/ddl"
	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
	"csv2ddl/internal/metrics"
	"csv2ddl/internal/source"

	"go.uber.org/zap"
)

// Step names used as metric labels.
const (
	StepRead   = "read"
	StepInfer  = "infer"
	StepMap    = "map"
	StepRender = "render"
)

// Options configure a run.
type Options struct {
	// Dialect is a registered dialect name (case-sensitive).
	Dialect string
	// TableName overrides the table's own name (the input file stem).
	TableName string
	// IfNotExists adds IF NOT EXISTS to the statement.
	IfNotExists bool
	// Engine infers column types. Nil uses an engine with default options.
	Engine *infer.Engine
	// Job labels metrics.
	Job    string
	Logger *zap.Logger
}

// ColumnReport describes how one column was typed.
type ColumnReport struct {
	Name       string  `yaml:"name"`
	Identifier string  `yaml:"identifier"`
	Kind       string  `yaml:"kind"`
	Precision  int     `yaml:"precision,omitempty"`
	Scale      int     `yaml:"scale,omitempty"`
	MaxLength  int     `yaml:"max_length,omitempty"`
	Confidence float64 `yaml:"confidence"`
	Label      string  `yaml:"label"`
	SQLType    string  `yaml:"sql_type"`
}

// Result is a finished conversion.
type Result struct {
	Table   string
	Dialect string
	DDL     string
	Rows    int
	Skipped int
	Columns []ColumnReport
}

// File reads location with srcOpts and converts it.
func File(ctx context.Context, location string, srcOpts source.Options, opts Options) (*Result, error) {
	// Fail on a bad dialect before touching the input.
	if _, err := dialect.New(opts.Dialect); err != nil {
		return nil, err
	}

	var tbl *source.Table
	err := step(opts.Job, StepRead, func() error {
		var err error
		tbl, err = source.Open(ctx, location, srcOpts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return Run(ctx, tbl, opts)
}

// Run converts an already loaded table. No DDL is returned on error.
func Run(ctx context.Context, tbl *source.Table, opts Options) (*Result, error) {
	d, err := dialect.New(opts.Dialect)
	if err != nil {
		return nil, err
	}
	if tbl == nil || len(tbl.Names) == 0 {
		return nil, errors.New("convert: table has no columns")
	}
	if len(tbl.Columns) != len(tbl.Names) {
		return nil, fmt.Errorf("convert: %d column names but %d value columns", len(tbl.Names), len(tbl.Columns))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	name := opts.TableName
	if name == "" {
		name = tbl.Name
	}
	if name == "" {
		return nil, errors.New("convert: table name is required")
	}

	eng := opts.Engine
	if eng == nil {
		if eng, err = infer.NewEngine(infer.Options{Logger: log}); err != nil {
			return nil, err
		}
	}

	var types []infer.Type
	err = step(opts.Job, StepInfer, func() error {
		var err error
		types, err = eng.InferAll(ctx, tbl.Names, tbl.Columns)
		return err
	})
	if err != nil {
		return nil, err
	}

	def := ddl.TableDef{Name: name, IfNotExists: opts.IfNotExists, Columns: make([]ddl.ColumnDef, len(types))}
	_ = step(opts.Job, StepMap, func() error {
		kinds := map[infer.Kind]int64{}
		for i, t := range types {
			def.Columns[i] = ddl.ColumnDef{Name: tbl.Names[i], SQLType: d.MapType(t)}
			kinds[t.Kind]++
		}
		for k, n := range kinds {
			metrics.RecordColumns(opts.Job, k.String(), n)
		}
		return nil
	})

	var stmt string
	err = step(opts.Job, StepRender, func() error {
		var err error
		stmt, err = ddl.BuildCreateTableSQL(def, d)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordRows(opts.Job, "sampled", int64(tbl.Rows))
	metrics.RecordRows(opts.Job, "skipped", int64(tbl.Skipped))

	ids := ddl.Identifiers(def, d)
	res := &Result{
		Table:   ddl.Sanitize(name),
		Dialect: d.Name(),
		DDL:     stmt,
		Rows:    tbl.Rows,
		Skipped: tbl.Skipped,
		Columns: make([]ColumnReport, len(types)),
	}
	for i, t := range types {
		res.Columns[i] = ColumnReport{
			Name:       tbl.Names[i],
			Identifier: ids[i],
			Kind:       t.Kind.String(),
			Precision:  t.Precision,
			Scale:      t.Scale,
			MaxLength:  t.MaxLength,
			Confidence: t.Confidence,
			Label:      t.Label(),
			SQLType:    def.Columns[i].SQLType,
		}
	}

	log.Debug("rendered table",
		zap.String("table", res.Table),
		zap.String("dialect", res.Dialect),
		zap.Int("columns", len(res.Columns)))
	return res, nil
}

func step(job, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(job, name, err, time.Since(start))
	return err
}
