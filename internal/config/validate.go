package config

// This file is a static linter for Config values: it returns issues
// (errors and warnings) that the CLI prints before doing any work.

import (
	"fmt"
	"strings"

	"csv2ddl/internal/apperrors"
	"csv2ddl/internal/ddl"
	"csv2ddl/internal/dialect"
	"csv2ddl/internal/source"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is the YAML path of the offending key (e.g. "input.sample_size").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate lints cfg without mutating it. The dialect check consults the
// dialect registry, so callers must have registered dialects first.
func Validate(cfg Config) []Issue {
	var issues []Issue

	issues = append(issues, validateDialect(cfg.Dialect)...)
	if name := strings.TrimSpace(cfg.TableName); name != "" {
		if got := ddl.Sanitize(name); got != name {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "table_name",
				Message:  fmt.Sprintf("table name %q will be rendered as %s", name, got),
			})
		}
	}
	issues = append(issues, validateInput(cfg)...)
	issues = append(issues, validateInference(cfg.Inference)...)
	issues = append(issues, validateOutput(cfg.Output)...)
	issues = append(issues, validateHTTP(cfg.HTTP)...)
	issues = append(issues, validateMetrics(cfg.Metrics)...)

	return issues
}

func validateDialect(name string) []Issue {
	if strings.TrimSpace(name) == "" {
		return []Issue{{
			Severity: SeverityError,
			Path:     "dialect",
			Message:  "dialect must not be empty",
		}}
	}
	for _, n := range dialect.Names() {
		if n == name {
			return nil
		}
	}
	return []Issue{{
		Severity: SeverityError,
		Path:     "dialect",
		Message:  fmt.Sprintf("unsupported dialect %q; valid options: %s", name, strings.Join(dialect.Names(), ", ")),
	}}
}

func validateInput(cfg Config) []Issue {
	var issues []Issue
	in := cfg.Input

	if d, err := cfg.DelimiterRune(); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.delimiter",
			Message:  err.Error(),
		})
	} else if d == '"' || d == '\n' || d == '\r' {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.delimiter",
			Message:  fmt.Sprintf("delimiter %q cannot separate fields", d),
		})
	}

	switch {
	case in.SampleSize <= 0:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.sample_size",
			Message:  fmt.Sprintf("%v: sample_size must be positive, got %d", apperrors.ErrInvalidSample, in.SampleSize),
		})
	case in.SampleSize > source.MaxSampleRows:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "input.sample_size",
			Message:  fmt.Sprintf("sample_size=%d exceeds the maximum; %d rows will be read", in.SampleSize, source.MaxSampleRows),
		})
	}

	if in.MaxColumns < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.max_columns",
			Message:  "max_columns must not be negative",
		})
	}

	return issues
}

func validateInference(inf InferenceConfig) []Issue {
	var issues []Issue

	if inf.DateSampleSize <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "inference.date_sample_size",
			Message:  fmt.Sprintf("%v: date_sample_size must be positive, got %d", apperrors.ErrInvalidSample, inf.DateSampleSize),
		})
	}
	if inf.Workers < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "inference.workers",
			Message:  "workers must not be negative",
		})
	}
	for i, l := range inf.DateLayouts {
		if strings.TrimSpace(l) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("inference.date_layouts[%d]", i),
				Message:  "date layout must not be empty",
			})
		}
	}

	return issues
}

func validateOutput(out OutputConfig) []Issue {
	if out.AllowOutside && strings.TrimSpace(out.Path) == "" {
		return []Issue{{
			Severity: SeverityWarning,
			Path:     "output.allow_outside",
			Message:  "allow_outside has no effect when output goes to stdout",
		}}
	}
	return nil
}

func validateHTTP(h HTTPConfig) []Issue {
	var issues []Issue

	if h.Timeout < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "http.timeout",
			Message:  "timeout must not be negative",
		})
	}
	if h.MaxRetries < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "http.max_retries",
			Message:  "max_retries must not be negative",
		})
	}
	if h.MaxBytes < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "http.max_bytes",
			Message:  "max_bytes must not be negative",
		})
	}
	if h.InsecureSkipVerify {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "http.insecure_skip_verify",
			Message:  "TLS certificate verification is disabled for downloads",
		})
	}

	return issues
}

func validateMetrics(m MetricsConfig) []Issue {
	var issues []Issue

	switch m.Backend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires pushgateway_url",
			})
		}
	case "datadog":
		if strings.TrimSpace(m.DatadogAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.datadog_addr",
				Message:  "datadog backend requires datadog_addr",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; valid options: none, pushgateway, datadog", m.Backend),
		})
	}

	return issues
}
