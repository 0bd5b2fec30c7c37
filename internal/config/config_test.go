package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleYAML = `
dialect: postgres
table_name: orders
omit_if_not_exists: true
input:
  delimiter: ";"
  encoding: latin1
  sample_size: 5000
inference:
  date_sample_size: 200
  seed: 42
  date_layouts: ["02.01.2006", "2006/01/02"]
output:
  path: out/orders.sql
  report: true
http:
  timeout: 5s
  max_retries: 4
metrics:
  backend: pushgateway
  pushgateway_url: http://pushgateway:9091
`

func writeYAML(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

// Load tests change the working directory or environment, so they do not
// run in parallel.

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "snowflake", cfg.Dialect)
	assert.False(t, cfg.OmitIfNotExists)
	assert.Equal(t, ",", cfg.Input.Delimiter)
	assert.Equal(t, 1000, cfg.Input.SampleSize)
	assert.Equal(t, 512, cfg.Input.MaxColumns)
	assert.Equal(t, 100, cfg.Inference.DateSampleSize)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2, cfg.HTTP.MaxRetries)
	assert.Equal(t, int64(256<<20), cfg.HTTP.MaxBytes)
	assert.Equal(t, "none", cfg.Metrics.Backend)
	assert.Equal(t, "csv2ddl", cfg.Metrics.Job)
	assert.Empty(t, cfg.Output.Path)
}

func TestLoad_FileThenEnv(t *testing.T) {
	p := writeYAML(t, t.TempDir(), "custom.yaml", sampleYAML)
	t.Setenv("CSV2DDL_DIALECT", "mysql")
	t.Setenv("CSV2DDL_SAMPLE_SIZE", "250")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Dialect, "env overrides file")
	assert.Equal(t, 250, cfg.Input.SampleSize, "env overrides file")
	assert.Equal(t, "orders", cfg.TableName)
	assert.True(t, cfg.OmitIfNotExists)
	assert.Equal(t, ";", cfg.Input.Delimiter)
	assert.Equal(t, "latin1", cfg.Input.Encoding)
	assert.Equal(t, 200, cfg.Inference.DateSampleSize)
	assert.Equal(t, uint64(42), cfg.Inference.Seed)
	assert.Equal(t, []string{"02.01.2006", "2006/01/02"}, cfg.Inference.DateLayouts)
	assert.Equal(t, "out/orders.sql", cfg.Output.Path)
	assert.True(t, cfg.Output.Report)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 4, cfg.HTTP.MaxRetries)
	assert.Equal(t, "pushgateway", cfg.Metrics.Backend)
	assert.Equal(t, 512, cfg.Input.MaxColumns, "unset keys keep defaults")
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, DefaultFile, "dialect: oracle\n")
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "oracle", cfg.Dialect)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeYAML(t, dir, "bad.yaml", "input: [not, a, map\n")
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestDelimiterRune(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: "", want: ','},
		{in: ",", want: ','},
		{in: ";", want: ';'},
		{in: "|", want: '|'},
		{in: `\t`, want: '\t'},
		{in: "TAB", want: '\t'},
		{in: "\t", want: '\t'},
		{in: "§", want: '§'},
		{in: ";;", wantErr: true},
		{in: "ab", wantErr: true},
		{in: "\xff", wantErr: true},
	}
	for _, tt := range tests {
		cfg := Config{Input: InputConfig{Delimiter: tt.in}}
		got, err := cfg.DelimiterRune()
		if tt.wantErr {
			assert.Error(t, err, "DelimiterRune(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "DelimiterRune(%q)", tt.in)
		assert.Equal(t, tt.want, got, "DelimiterRune(%q)", tt.in)
	}
}

func TestOptionsMapping(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Input:     InputConfig{Delimiter: "|", Encoding: "utf-16", Sheet: "Data", SampleSize: 10, MaxColumns: 20},
		Inference: InferenceConfig{DateSampleSize: 7, Seed: 9, Workers: 3, DateLayouts: []string{"2006"}},
		HTTP:      HTTPConfig{Timeout: time.Second, MaxRetries: 1, MaxBytes: 1024, InsecureSkipVerify: true},
	}
	log := zap.NewNop()

	so, err := cfg.SourceOptions(log)
	require.NoError(t, err)
	assert.Equal(t, '|', so.Delimiter)
	assert.Equal(t, "utf-16", so.Encoding)
	assert.Equal(t, "Data", so.Sheet)
	assert.Equal(t, 10, so.SampleSize)
	assert.Equal(t, 20, so.MaxColumns)
	assert.Equal(t, int64(1024), so.MaxBytes)
	assert.Equal(t, time.Second, so.HTTP.Timeout)
	assert.Equal(t, 1, so.HTTP.MaxRetries)
	assert.True(t, so.HTTP.InsecureSkipVerify)
	assert.Same(t, log, so.Logger)

	eo := cfg.EngineOptions(log)
	assert.Equal(t, 7, eo.DateSampleSize)
	assert.Equal(t, uint64(9), eo.Seed)
	assert.Equal(t, 3, eo.Workers)
	assert.Equal(t, []string{"2006"}, eo.DateLayouts)

	cfg.Input.Delimiter = "::"
	_, err = cfg.SourceOptions(log)
	assert.Error(t, err)
}
