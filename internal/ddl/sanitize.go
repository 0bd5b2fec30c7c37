package ddl

import (
	"strconv"
	"strings"
)

// Sanitize turns an arbitrary header into a bare SQL identifier:
//  1. every character outside [A-Za-z0-9_] becomes '_'
//  2. trailing underscores are stripped
//  3. a leading digit gets a "col_" prefix
//  4. an empty result becomes "column"
func Sanitize(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if isIdentRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	out := strings.TrimRight(sb.String(), "_")
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "col_" + out
	}
	if out == "" {
		out = "column"
	}
	return out
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// AvoidReserved suffixes a reserved identifier. "date" gets "_dt", anything
// else "_col". The original casing is kept.
func AvoidReserved(id string, rc ReservedChecker) string {
	if rc == nil || !rc.IsReserved(id) {
		return id
	}
	if strings.ToLower(id) == "date" {
		return id + "_dt"
	}
	return id + "_col"
}

// Uniquifier hands out identifiers that are unique under case-insensitive
// comparison. The zero value is not usable; call NewUniquifier.
type Uniquifier struct {
	exact map[string]struct{}
	lower map[string]struct{}
}

// NewUniquifier returns an empty Uniquifier.
func NewUniquifier() *Uniquifier {
	return &Uniquifier{exact: map[string]struct{}{}, lower: map[string]struct{}{}}
}

// Add returns id if neither it nor its lowercase form is taken, otherwise the
// first id_N (N = 1, 2, ...) that is free. The returned identifier is
// recorded before Add returns.
func (u *Uniquifier) Add(id string) string {
	cand := id
	for n := 1; u.taken(cand); n++ {
		cand = id + "_" + strconv.Itoa(n)
	}
	u.exact[cand] = struct{}{}
	u.lower[strings.ToLower(cand)] = struct{}{}
	return cand
}

func (u *Uniquifier) taken(id string) bool {
	if _, ok := u.exact[id]; ok {
		return true
	}
	_, ok := u.lower[strings.ToLower(id)]
	return ok
}
