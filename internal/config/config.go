// Package config defines csv2ddl's configuration model. Values come from an
// optional YAML file, then CSV2DDL_* environment variables, then CLI flags
// (applied by the caller). Defaults live in the env-default tags and also
// replace zero values read from the file, so booleans all default to false.
//
// Example csv2ddl.yaml:
//
//	dialect: postgres
//	input:
//	  delimiter: ";"
//	  encoding: latin1
//	  sample_size: 5000
//	inference:
//	  date_sample_size: 200
//	output:
//	  path: out/orders.sql
//	metrics:
//	  backend: pushgateway
//	  pushgateway_url: http://pushgateway:9091
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"csv2ddl/internal/datasource/httpds"
	"csv2ddl/internal/infer"
	"csv2ddl/internal/source"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
)

// DefaultFile is read when no file is named and it exists in the working
// directory.
const DefaultFile = "csv2ddl.yaml"

// Config is the full csv2ddl configuration.
type Config struct {
	// Dialect names the target database. See dialect.Names.
	Dialect string `yaml:"dialect" env:"CSV2DDL_DIALECT" env-default:"snowflake"`
	// TableName overrides the table name derived from the input file.
	TableName string `yaml:"table_name" env:"CSV2DDL_TABLE_NAME"`
	// OmitIfNotExists drops the IF NOT EXISTS clause.
	OmitIfNotExists bool `yaml:"omit_if_not_exists" env:"CSV2DDL_OMIT_IF_NOT_EXISTS" env-default:"false"`

	Input     InputConfig     `yaml:"input"`
	Inference InferenceConfig `yaml:"inference"`
	Output    OutputConfig    `yaml:"output"`
	HTTP      HTTPConfig      `yaml:"http"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

// InputConfig controls how the input file is read.
type InputConfig struct {
	// Delimiter is a single character; "\t" and "tab" mean a tab.
	Delimiter  string `yaml:"delimiter" env:"CSV2DDL_DELIMITER" env-default:","`
	Encoding   string `yaml:"encoding" env:"CSV2DDL_ENCODING"`
	Sheet      string `yaml:"sheet" env:"CSV2DDL_SHEET"`
	SampleSize int    `yaml:"sample_size" env:"CSV2DDL_SAMPLE_SIZE" env-default:"1000"`
	MaxColumns int    `yaml:"max_columns" env:"CSV2DDL_MAX_COLUMNS" env-default:"512"`
}

// InferenceConfig tunes the type inference engine.
type InferenceConfig struct {
	DateSampleSize int `yaml:"date_sample_size" env:"CSV2DDL_DATE_SAMPLE_SIZE" env-default:"100"`
	// Seed makes date sampling reproducible across runs.
	Seed    uint64 `yaml:"seed" env:"CSV2DDL_SEED" env-default:"0"`
	Workers int    `yaml:"workers" env:"CSV2DDL_WORKERS" env-default:"0"`
	// DateLayouts replaces the built-in date layouts (Go reference time).
	DateLayouts []string `yaml:"date_layouts" env:"CSV2DDL_DATE_LAYOUTS" env-separator:";"`
}

// OutputConfig selects where DDL goes. An empty Path means stdout.
type OutputConfig struct {
	Path         string `yaml:"path" env:"CSV2DDL_OUTPUT"`
	AllowOutside bool   `yaml:"allow_outside" env:"CSV2DDL_ALLOW_OUTSIDE_OUTPUT" env-default:"false"`
	// Report writes the per-column inference report to stderr as YAML.
	Report bool `yaml:"report" env:"CSV2DDL_REPORT" env-default:"false"`
}

// HTTPConfig applies to http(s) inputs.
type HTTPConfig struct {
	Timeout            time.Duration `yaml:"timeout" env:"CSV2DDL_HTTP_TIMEOUT" env-default:"30s"`
	MaxRetries         int           `yaml:"max_retries" env:"CSV2DDL_HTTP_MAX_RETRIES" env-default:"2"`
	MaxBytes           int64         `yaml:"max_bytes" env:"CSV2DDL_HTTP_MAX_BYTES" env-default:"268435456"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify" env:"CSV2DDL_HTTP_INSECURE" env-default:"false"`
}

// MetricsConfig selects the metrics backend: none, pushgateway or datadog.
type MetricsConfig struct {
	Backend        string `yaml:"backend" env:"CSV2DDL_METRICS_BACKEND" env-default:"none"`
	Job            string `yaml:"job" env:"CSV2DDL_METRICS_JOB" env-default:"csv2ddl"`
	PushgatewayURL string `yaml:"pushgateway_url" env:"CSV2DDL_PUSHGATEWAY_URL"`
	DatadogAddr    string `yaml:"datadog_addr" env:"CSV2DDL_DATADOG_ADDR" env-default:"127.0.0.1:8125"`
}

type LogConfig struct {
	Verbose bool `yaml:"verbose" env:"CSV2DDL_VERBOSE" env-default:"false"`
}

// Load reads path (YAML) with environment overrides. An empty path reads
// DefaultFile when it exists, otherwise only the environment and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", DefaultFile, err)
		}
	}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// DelimiterRune decodes Input.Delimiter.
func (c *Config) DelimiterRune() (rune, error) {
	d := c.Input.Delimiter
	switch strings.ToLower(d) {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(d)
	if r == utf8.RuneError || size != len(d) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", d)
	}
	return r, nil
}

// SourceOptions maps the input and HTTP settings onto source.Options.
func (c *Config) SourceOptions(log *zap.Logger) (source.Options, error) {
	delim, err := c.DelimiterRune()
	if err != nil {
		return source.Options{}, err
	}
	return source.Options{
		Delimiter:  delim,
		Encoding:   c.Input.Encoding,
		Sheet:      c.Input.Sheet,
		SampleSize: c.Input.SampleSize,
		MaxColumns: c.Input.MaxColumns,
		HTTP: httpds.Config{
			Timeout:            c.HTTP.Timeout,
			MaxRetries:         c.HTTP.MaxRetries,
			InsecureSkipVerify: c.HTTP.InsecureSkipVerify,
		},
		MaxBytes: c.HTTP.MaxBytes,
		Logger:   log,
	}, nil
}

// EngineOptions maps the inference settings onto infer.Options.
func (c *Config) EngineOptions(log *zap.Logger) infer.Options {
	return infer.Options{
		DateSampleSize: c.Inference.DateSampleSize,
		Seed:           c.Inference.Seed,
		DateLayouts:    c.Inference.DateLayouts,
		Workers:        c.Inference.Workers,
		Logger:         log,
	}
}
