package config

import (
	"strings"
	"testing"

	_ "csv2ddl/internal/dialect/all"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

// validConfig mirrors the defaults Load produces.
func validConfig() Config {
	return Config{
		Dialect:   "snowflake",
		Input:     InputConfig{Delimiter: ",", SampleSize: 1000, MaxColumns: 512},
		Inference: InferenceConfig{DateSampleSize: 100},
		HTTP:      HTTPConfig{MaxRetries: 2, MaxBytes: 1 << 20},
		Metrics:   MetricsConfig{Backend: "none", Job: "csv2ddl", DatadogAddr: "127.0.0.1:8125"},
	}
}

func TestValidate_ValidMinimal(t *testing.T) {
	t.Parallel()

	if issues := Validate(validConfig()); len(issues) != 0 {
		t.Fatalf("Validate(valid) = %+v, want no issues", issues)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
		sev    IssueSeverity
		path   string
		msg    string
	}{
		{
			name:   "empty dialect",
			mutate: func(c *Config) { c.Dialect = "" },
			sev:    SeverityError,
			path:   "dialect",
			msg:    "must not be empty",
		},
		{
			name:   "unknown dialect lists valid names",
			mutate: func(c *Config) { c.Dialect = "db2" },
			sev:    SeverityError,
			path:   "dialect",
			msg:    "databricks, mysql, oracle, postgres, snowflake, sqlite, sqlserver",
		},
		{
			name:   "dialect names are case-sensitive",
			mutate: func(c *Config) { c.Dialect = "Postgres" },
			sev:    SeverityError,
			path:   "dialect",
			msg:    `unsupported dialect "Postgres"`,
		},
		{
			name:   "table name that will be sanitized",
			mutate: func(c *Config) { c.TableName = "2024 sales" },
			sev:    SeverityWarning,
			path:   "table_name",
			msg:    "rendered as col_2024_sales",
		},
		{
			name:   "multi-character delimiter",
			mutate: func(c *Config) { c.Input.Delimiter = "||" },
			sev:    SeverityError,
			path:   "input.delimiter",
			msg:    "single character",
		},
		{
			name:   "quote delimiter",
			mutate: func(c *Config) { c.Input.Delimiter = `"` },
			sev:    SeverityError,
			path:   "input.delimiter",
			msg:    "cannot separate fields",
		},
		{
			name:   "negative sample size",
			mutate: func(c *Config) { c.Input.SampleSize = -1 },
			sev:    SeverityError,
			path:   "input.sample_size",
			msg:    "must be positive",
		},
		{
			name:   "zero sample size",
			mutate: func(c *Config) { c.Input.SampleSize = 0 },
			sev:    SeverityError,
			path:   "input.sample_size",
			msg:    "invalid sample: sample_size must be positive, got 0",
		},
		{
			name:   "sample size above maximum",
			mutate: func(c *Config) { c.Input.SampleSize = 1_000_000 },
			sev:    SeverityWarning,
			path:   "input.sample_size",
			msg:    "50000 rows will be read",
		},
		{
			name:   "negative max columns",
			mutate: func(c *Config) { c.Input.MaxColumns = -3 },
			sev:    SeverityError,
			path:   "input.max_columns",
			msg:    "must not be negative",
		},
		{
			name:   "negative date sample size",
			mutate: func(c *Config) { c.Inference.DateSampleSize = -10 },
			sev:    SeverityError,
			path:   "inference.date_sample_size",
			msg:    "must be positive",
		},
		{
			name:   "zero date sample size",
			mutate: func(c *Config) { c.Inference.DateSampleSize = 0 },
			sev:    SeverityError,
			path:   "inference.date_sample_size",
			msg:    "invalid sample: date_sample_size must be positive, got 0",
		},
		{
			name:   "negative workers",
			mutate: func(c *Config) { c.Inference.Workers = -1 },
			sev:    SeverityError,
			path:   "inference.workers",
			msg:    "must not be negative",
		},
		{
			name:   "blank date layout",
			mutate: func(c *Config) { c.Inference.DateLayouts = []string{"2006-01-02", " "} },
			sev:    SeverityError,
			path:   "inference.date_layouts[1]",
			msg:    "must not be empty",
		},
		{
			name:   "allow outside without output path",
			mutate: func(c *Config) { c.Output.AllowOutside = true },
			sev:    SeverityWarning,
			path:   "output.allow_outside",
			msg:    "no effect",
		},
		{
			name:   "negative retries",
			mutate: func(c *Config) { c.HTTP.MaxRetries = -1 },
			sev:    SeverityError,
			path:   "http.max_retries",
			msg:    "must not be negative",
		},
		{
			name:   "insecure downloads",
			mutate: func(c *Config) { c.HTTP.InsecureSkipVerify = true },
			sev:    SeverityWarning,
			path:   "http.insecure_skip_verify",
			msg:    "disabled",
		},
		{
			name:   "pushgateway without url",
			mutate: func(c *Config) { c.Metrics.Backend = "pushgateway" },
			sev:    SeverityError,
			path:   "metrics.pushgateway_url",
			msg:    "requires pushgateway_url",
		},
		{
			name:   "datadog without addr",
			mutate: func(c *Config) { c.Metrics.Backend = "datadog"; c.Metrics.DatadogAddr = "" },
			sev:    SeverityError,
			path:   "metrics.datadog_addr",
			msg:    "requires datadog_addr",
		},
		{
			name:   "unknown metrics backend",
			mutate: func(c *Config) { c.Metrics.Backend = "graphite" },
			sev:    SeverityError,
			path:   "metrics.backend",
			msg:    `unknown metrics backend "graphite"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)
			issues := Validate(cfg)
			if !hasIssue(t, issues, tt.sev, tt.path, tt.msg) {
				t.Fatalf("expected %s at %s containing %q; got %+v", tt.sev, tt.path, tt.msg, issues)
			}
		})
	}
}

func TestHasErrors(t *testing.T) {
	t.Parallel()

	if HasErrors(nil) {
		t.Fatalf("HasErrors(nil) = true")
	}
	warn := Issue{Severity: SeverityWarning, Path: "x", Message: "m"}
	if HasErrors([]Issue{warn}) {
		t.Fatalf("HasErrors(warnings only) = true")
	}
	if !HasErrors([]Issue{warn, {Severity: SeverityError, Path: "y", Message: "m"}}) {
		t.Fatalf("HasErrors(with error) = false")
	}
	if got := warn.Error(); got != "warning at x: m" {
		t.Fatalf("Issue.Error() = %q", got)
	}
}
