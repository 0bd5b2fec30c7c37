// Command csv2ddl infers column types from a CSV or XLSX file and prints a
// CREATE TABLE statement for the chosen SQL dialect.
//
// Usage:
//
//	csv2ddl [flags] <file|url>
//
// Settings come from csv2ddl.yaml (or -config), then CSV2DDL_* environment
// variables, then flags. Only flags given on the command line override.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"csv2ddl/internal/config"
	"csv2ddl/internal/convert"
	"csv2ddl/internal/dialect"
	"csv2ddl/internal/infer"
	"csv2ddl/internal/logging"
	"csv2ddl/internal/metrics"
	"csv2ddl/internal/metrics/datadog"
	"csv2ddl/internal/metrics/prompush"
	"csv2ddl/internal/sink"
	"csv2ddl/internal/source"

	"github.com/google/uuid"
	"go.uber.org/zap"

	// every dialect and input format is compiled in; flags pick one.
	_ "csv2ddl/internal/dialect/all"
	_ "csv2ddl/internal/source/all"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// stepWrite labels the output stage in metrics.
const stepWrite = "write"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// flags holds the raw command-line values. They are copied onto the loaded
// config only for flags the user actually set.
type flags struct {
	cfgPath        string
	dialect        string
	sampleSize     int
	dateSampleSize int
	output         string
	allowOutside   bool
	tableName      string
	delimiter      string
	encoding       string
	sheet          string
	maxColumns     int
	verbose        bool
	report         bool
	metricsBackend string
	pushgatewayURL string
	datadogAddr    string
	noIfNotExists  bool
}

func newFlagSet(f *flags, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("csv2ddl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.cfgPath, "config", "", "YAML config path (default ./"+config.DefaultFile+" when present)")
	fs.StringVar(&f.dialect, "dialect", "snowflake", "target dialect: "+strings.Join(dialect.Names(), ", "))
	fs.IntVar(&f.sampleSize, "sample-size", 1000, fmt.Sprintf("data rows to sample (max %d)", source.MaxSampleRows))
	fs.IntVar(&f.dateSampleSize, "date-sample-size", infer.DefaultDateSampleSize, "values parsed by the date check per column")
	fs.StringVar(&f.output, "output", "", "write DDL to this file instead of stdout")
	fs.BoolVar(&f.allowOutside, "allow-outside-output", false, "allow -output outside the working directory")
	fs.StringVar(&f.tableName, "table-name", "", "table name (default: input file name)")
	fs.StringVar(&f.delimiter, "delimiter", ",", `CSV field delimiter ("\t" or "tab" for tab)`)
	fs.StringVar(&f.encoding, "encoding", "", "CSV text encoding (default: detect)")
	fs.StringVar(&f.sheet, "sheet-name", "", "XLSX sheet to read (default: first sheet)")
	fs.IntVar(&f.maxColumns, "max-columns", source.DefaultMaxColumns, "reject files wider than this")
	fs.BoolVar(&f.verbose, "verbose", false, "enable debug logs")
	fs.BoolVar(&f.report, "report", false, "print the per-column inference report to stderr as YAML")
	fs.StringVar(&f.metricsBackend, "metrics-backend", "none", "metrics backend: none, pushgateway, datadog")
	fs.StringVar(&f.pushgatewayURL, "pushgateway-url", "", "Pushgateway base URL")
	fs.StringVar(&f.datadogAddr, "datadog-addr", "", "DogStatsD address")
	fs.BoolVar(&f.noIfNotExists, "no-if-not-exists", false, "omit IF NOT EXISTS")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: csv2ddl [flags] <file|url>\n\n")
		fmt.Fprintf(fs.Output(), "supported inputs: %s\n\n", strings.Join(source.Extensions(), ", "))
		fs.PrintDefaults()
	}
	return fs
}

// apply copies every flag set on the command line onto cfg.
func (f *flags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "dialect":
			cfg.Dialect = f.dialect
		case "sample-size":
			cfg.Input.SampleSize = f.sampleSize
		case "date-sample-size":
			cfg.Inference.DateSampleSize = f.dateSampleSize
		case "output":
			cfg.Output.Path = f.output
		case "allow-outside-output":
			cfg.Output.AllowOutside = f.allowOutside
		case "table-name":
			cfg.TableName = f.tableName
		case "delimiter":
			cfg.Input.Delimiter = f.delimiter
		case "encoding":
			cfg.Input.Encoding = f.encoding
		case "sheet-name":
			cfg.Input.Sheet = f.sheet
		case "max-columns":
			cfg.Input.MaxColumns = f.maxColumns
		case "verbose":
			cfg.Log.Verbose = f.verbose
		case "report":
			cfg.Output.Report = f.report
		case "metrics-backend":
			cfg.Metrics.Backend = f.metricsBackend
		case "pushgateway-url":
			cfg.Metrics.PushgatewayURL = f.pushgatewayURL
		case "datadog-addr":
			cfg.Metrics.DatadogAddr = f.datadogAddr
		case "no-if-not-exists":
			cfg.OmitIfNotExists = f.noIfNotExists
		}
	})
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	input := fs.Arg(0)

	cfg, err := config.Load(f.cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	f.apply(fs, cfg)

	issues := config.Validate(*cfg)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return exitError
	}

	runID := uuid.NewString()
	log := logging.New(cfg.Log.Verbose, stderr).With(zap.String("run_id", runID))
	defer func() { _ = log.Sync() }()

	if flush := setupMetrics(cfg.Metrics, runID, log); flush != nil {
		defer flush()
	}

	if err := convertFile(ctx, input, cfg, stdout, stderr, log); err != nil {
		log.Error("conversion failed", zap.String("input", input), zap.Error(err))
		return exitError
	}
	return exitOK
}

// setupMetrics installs the configured backend and returns its flush hook,
// or nil when metrics stay disabled.
func setupMetrics(m config.MetricsConfig, runID string, log *zap.Logger) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case "pushgateway":
		b, err = prompush.NewBackend(m.Job, m.PushgatewayURL)
		if err == nil {
			log.Debug("metrics enabled",
				zap.String("backend", m.Backend),
				zap.String("url", m.PushgatewayURL),
				zap.String("job", m.Job))
		}
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       m.DatadogAddr,
			GlobalTags: []string{"run_id:" + runID},
		})
		if err == nil {
			log.Debug("metrics enabled", zap.String("backend", m.Backend), zap.String("addr", m.DatadogAddr))
		}
	case "", "none":
		log.Debug("metrics disabled")
		return nil
	default:
		log.Warn("unknown metrics backend; metrics disabled", zap.String("backend", m.Backend))
		return nil
	}
	if err != nil {
		log.Warn("metrics backend init failed; using nop", zap.String("backend", m.Backend), zap.Error(err))
		return nil
	}

	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Warn("metrics flush failed", zap.Error(err))
		}
	}
}

func convertFile(ctx context.Context, input string, cfg *config.Config, stdout, stderr io.Writer, log *zap.Logger) error {
	srcOpts, err := cfg.SourceOptions(log)
	if err != nil {
		return err
	}
	eng, err := infer.NewEngine(cfg.EngineOptions(log))
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := convert.File(ctx, input, srcOpts, convert.Options{
		Dialect:     cfg.Dialect,
		TableName:   cfg.TableName,
		IfNotExists: !cfg.OmitIfNotExists,
		Engine:      eng,
		Job:         cfg.Metrics.Job,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	var out sink.Sink = sink.Stdout{W: stdout}
	if cfg.Output.Path != "" {
		out = sink.File{Path: cfg.Output.Path, AllowOutside: cfg.Output.AllowOutside}
	}
	writeStart := time.Now()
	err = out.Write(ctx, res.DDL)
	metrics.RecordStep(cfg.Metrics.Job, stepWrite, err, time.Since(writeStart))
	if err != nil {
		return err
	}

	if cfg.Output.Report {
		if err := convert.WriteReport(stderr, res); err != nil {
			return err
		}
	}

	log.Info("table definition written",
		zap.String("table", res.Table),
		zap.String("dialect", res.Dialect),
		zap.Int("columns", len(res.Columns)),
		zap.Int("rows_sampled", res.Rows),
		zap.Int("rows_skipped", res.Skipped),
		zap.String("output", outputName(cfg.Output.Path)),
		zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)))
	return nil
}

func outputName(p string) string {
	if p == "" {
		return "stdout"
	}
	return p
}
