package infer

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"unicode/utf8"

	"csv2ddl/internal/apperrors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Classification thresholds. Boolean and date fractions must be strictly
// greater than their threshold; numeric detection fails only when the coerced
// fraction is below NumericThreshold.
const (
	BooleanThreshold = 0.9
	NumericThreshold = 0.8
	DateThreshold    = 0.8
)

// Float headroom applied on top of the observed digits.
const (
	FloatPrecisionPad = 2
	FloatScalePad     = 1
	FloatPrecisionCap = 38
	FloatScaleCap     = 37
)

const (
	// DefaultDateSampleSize bounds how many values the date check parses.
	DefaultDateSampleSize = 100

	EmptyColumnLength = 1
	BooleanLength     = 5
	StringGrowthNum   = 12 // maxLength*12/10 == floor(maxLength*1.2)
	StringGrowthDen   = 10
	StringMinPad      = 10
)

const (
	confidenceEmpty   = 0.5
	confidenceNumeric = 0.95
	confidenceDefault = 0.9
)

// booleanWords are the lowercase renderings treated as boolean-like.
var booleanWords = map[string]struct{}{
	"true": {}, "false": {}, "1": {}, "0": {},
	"yes": {}, "no": {}, "y": {}, "n": {},
}

// Options configures an Engine.
type Options struct {
	// DateSampleSize caps the values parsed by the date check. Zero selects
	// DefaultDateSampleSize; negative values are rejected.
	DateSampleSize int

	// Seed is mixed with the column name to drive date sampling, so a given
	// (Seed, column) pair always samples the same values.
	Seed uint64

	// DateLayouts overrides the built-in date layouts when non-empty.
	DateLayouts []string

	// Workers bounds InferAll concurrency. Zero means GOMAXPROCS.
	Workers int

	Logger *zap.Logger
}

// Engine infers column types. It holds no mutable state after construction
// and is safe for concurrent use.
type Engine struct {
	dateSample int
	seed       uint64
	layouts    []string
	workers    int
	logger     *zap.Logger
}

// NewEngine validates opts and returns an Engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.DateSampleSize < 0 {
		return nil, fmt.Errorf("%w: date sample size must be positive, got %d",
			apperrors.ErrInvalidSample, opts.DateSampleSize)
	}
	if opts.DateSampleSize == 0 {
		opts.DateSampleSize = DefaultDateSampleSize
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	layouts := opts.DateLayouts
	if len(layouts) == 0 {
		layouts = defaultLayouts
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		dateSample: opts.DateSampleSize,
		seed:       opts.Seed,
		layouts:    layouts,
		workers:    opts.Workers,
		logger:     logger,
	}, nil
}

// Infer classifies one column. The first matching rule wins:
// empty, boolean-like, numeric, date, string.
func (e *Engine) Infer(name string, values []Value) Type {
	present := nonNull(values)
	log := e.logger.With(zap.String("column", name))

	if len(present) == 0 {
		log.Debug("column empty after dropping nulls")
		return Type{Kind: KindString, MaxLength: EmptyColumnLength, Confidence: confidenceEmpty}
	}

	if isBooleanColumn(present) {
		log.Debug("column is boolean-like; stored as short text")
		return Type{Kind: KindString, MaxLength: BooleanLength, Confidence: confidenceDefault}
	}

	if t, ok := analyzeNumeric(present); ok {
		log.Debug("column is numeric",
			zap.Stringer("kind", t.Kind),
			zap.Int("precision", t.Precision),
			zap.Int("scale", t.Scale))
		return t
	}

	if e.isDateColumn(name, present) {
		log.Debug("column is date")
		return Type{Kind: KindDate, Confidence: confidenceDefault}
	}

	t := analyzeString(present)
	log.Debug("column is string", zap.Int("max_length", t.MaxLength))
	return t
}

// InferAll infers every column concurrently. Output order matches names.
// Each column is classified independently, so scheduling never changes a
// result.
func (e *Engine) InferAll(ctx context.Context, names []string, columns [][]Value) ([]Type, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d column names but %d value columns",
			apperrors.ErrInvalidSample, len(names), len(columns))
	}
	e.logger.Debug("inferring column types", zap.Int("columns", len(names)))

	out := make([]Type, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.Infer(names[i], columns[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNull(values []Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v.Valid {
			out = append(out, v.Str)
		}
	}
	return out
}

func isBooleanColumn(vals []string) bool {
	hits := 0
	for _, v := range vals {
		if _, ok := booleanWords[strings.ToLower(strings.TrimSpace(v))]; ok {
			hits++
		}
	}
	return float64(hits)/float64(len(vals)) > BooleanThreshold
}

// analyzeString pads the longest value (in characters) by 20% plus a fixed
// margin.
func analyzeString(vals []string) Type {
	longest := 0
	for _, v := range vals {
		if n := utf8.RuneCountInString(v); n > longest {
			longest = n
		}
	}
	return Type{
		Kind:       KindString,
		MaxLength:  longest*StringGrowthNum/StringGrowthDen + StringMinPad,
		Confidence: confidenceDefault,
	}
}
