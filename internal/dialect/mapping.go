package dialect

import "fmt"

// ClampDecimal fits a requested (precision, scale) into l. The result always
// satisfies 0 <= scale < precision <= l.MaxPrecision.
func ClampDecimal(precision, scale int, l Limits) (int, int) {
	maxScale := l.MaxPrecision - 1
	if l.MaxScale > 0 {
		maxScale = min(maxScale, l.MaxScale)
	}
	s := max(min(scale, maxScale), 0)
	p := max(s+1, min(precision, l.MaxPrecision))
	s = min(s, p-1)
	return p, s
}

// Decimal renders NAME(p, s).
func Decimal(name string, precision, scale int) string {
	return fmt.Sprintf("%s(%d, %d)", name, precision, scale)
}

// Rung is one step of an integer width ladder: values needing at most Digits
// digits fit Type.
type Rung struct {
	Digits int
	Type   string
}

// PickInteger returns the first rung wide enough for precision. ok is false
// when precision overflows the ladder.
func PickInteger(ladder []Rung, precision int) (typ string, ok bool) {
	for _, r := range ladder {
		if precision <= r.Digits {
			return r.Type, true
		}
	}
	return "", false
}

// Varchar renders NAME(n) while n fits l.MaxVarchar, and overflow beyond it.
// Non-positive lengths render as 1.
func Varchar(name string, n int, l Limits, overflow string) string {
	n = max(n, 1)
	if l.MaxVarchar > 0 && n > l.MaxVarchar {
		return overflow
	}
	return fmt.Sprintf("%s(%d)", name, n)
}
