package infer

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal exponent bounds of a finite, non-zero float64.
const (
	maxFloatExp = 308
	minFloatExp = -324
)

// parseNumber coerces s into an exact decimal. Thousands separators,
// currency symbols and non-finite spellings are rejected, as is any non-zero
// value whose magnitude does not fit a float64.
func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if d.IsZero() {
		return decimal.Zero, true
	}
	// exponent of the leading digit; checked before anything expands d.
	lead := int64(d.NumDigits()) + int64(d.Exponent()) - 1
	if lead > maxFloatExp || lead < minFloatExp {
		return decimal.Decimal{}, false
	}
	if f, _ := strconv.ParseFloat(s, 64); math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return d, true
}

// analyzeNumeric reports ok=false when fewer than NumericThreshold of vals
// coerce to numbers. Otherwise it returns an Integer or Float type sized from
// the coerced values.
func analyzeNumeric(vals []string) (Type, bool) {
	nums := make([]decimal.Decimal, 0, len(vals))
	for _, v := range vals {
		if d, ok := parseNumber(v); ok {
			nums = append(nums, d)
		}
	}
	if len(nums) == 0 || float64(len(nums))/float64(len(vals)) < NumericThreshold {
		return Type{}, false
	}

	allInt := true
	for _, d := range nums {
		if !d.IsInteger() {
			allInt = false
			break
		}
	}
	if allInt {
		return integerType(nums), true
	}
	return floatType(nums), true
}

// integerType counts the digits of the largest magnitude bound. A negative
// minimum costs one more digit for the sign.
func integerType(nums []decimal.Decimal) Type {
	lo, hi := decimal.Min(nums[0], nums[1:]...), decimal.Max(nums[0], nums[1:]...)
	precision := max(intDigits(hi), intDigits(lo))
	if lo.IsNegative() {
		precision++
	}
	return Type{Kind: KindInteger, Precision: precision, Confidence: confidenceNumeric}
}

func intDigits(d decimal.Decimal) int {
	b := d.BigInt()
	return len(b.Abs(b).String())
}

// floatType tracks the widest integer part and the longest fraction across
// all values, then pads both for out-of-sample headroom.
func floatType(nums []decimal.Decimal) Type {
	var before, after int
	for _, d := range nums {
		b, a := splitDigits(d)
		before = max(before, b)
		after = max(after, a)
	}
	return Type{
		Kind:       KindFloat,
		Precision:  min(before+after+FloatPrecisionPad, FloatPrecisionCap),
		Scale:      min(after+FloatScalePad, FloatScaleCap),
		Confidence: confidenceNumeric,
	}
}

// splitDigits returns the digit counts on each side of the decimal point of
// |d|. Integral values have no fractional digits.
func splitDigits(d decimal.Decimal) (before, after int) {
	s := d.Abs().String()
	intPart, frac, found := strings.Cut(s, ".")
	if !found {
		return len(intPart), 0
	}
	return len(intPart), len(frac)
}
