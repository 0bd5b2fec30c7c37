// Package infer classifies raw column samples into semantic types
// (integer, float, date, string) with the size parameters a dialect needs to
// render a concrete SQL type.
package infer

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the semantic classification of a column.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindDate
)

// String returns the lowercase label used in logs and reports.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Type is the inferred type of one column.
//
// Precision and Scale are meaningful for KindInteger (Scale is always 0) and
// KindFloat (Scale < Precision). MaxLength is meaningful for KindString.
// Confidence is informational only.
type Type struct {
	Kind       Kind
	Precision  int
	Scale      int
	MaxLength  int
	Confidence float64
}

// Label renders the dialect-agnostic default type, e.g. NUMBER(5, 0),
// NUMBER(7, 3), DATE or VARCHAR(22).
func (t Type) Label() string {
	switch t.Kind {
	case KindInteger:
		return fmt.Sprintf("NUMBER(%d, 0)", t.Precision)
	case KindFloat:
		return fmt.Sprintf("NUMBER(%d, %d)", t.Precision, t.Scale)
	case KindDate:
		return "DATE"
	default:
		return fmt.Sprintf("VARCHAR(%d)", t.MaxLength)
	}
}

// Value is a single raw cell. Valid=false marks a missing cell.
type Value struct {
	Str   string
	Valid bool
}

// Text returns a present cell holding s.
func Text(s string) Value { return Value{Str: s, Valid: true} }

// Null returns a missing cell.
func Null() Value { return Value{} }

// Number returns a present cell holding the shortest decimal rendering of f.
// NaN is treated as missing, the same way spreadsheet readers report it.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Text(strconv.FormatFloat(f, 'f', -1, 64))
}

// Texts is a test and fixture helper building a column from strings.
func Texts(ss ...string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}
