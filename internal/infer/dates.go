package infer

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// defaultLayouts are the strict layouts the date check accepts. Go's
// non-padded verbs ("1", "2") also accept zero-padded input, so each entry
// covers both spellings. Month names match case-insensitively.
var defaultLayouts = []string{
	// dates
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"1/2/2006", // MDY
	"2/1/2006", // DMY
	"1-2-2006",
	"2-1-2006",
	"2.1.2006",
	"1.2.2006",
	"2/1/06",
	"1/2/06",
	"20060102",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"Mon Jan 2 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",

	// timestamps
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05Z0700",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04:05.999999999",
	"2006-1-2 15:04",
	"2006-01-02 15:04:05 -0700",
	"2006/1/2 15:04:05",
	"1/2/2006 15:04:05",
	"2/1/2006 15:04:05",
	"1/2/2006 15:04",
	"2/1/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",
}

// isDateValue reports whether s parses under any layout.
func isDateValue(s string, layouts []string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// isDateColumn parses up to e.dateSample values and reports whether more
// than DateThreshold of them are dates.
func (e *Engine) isDateColumn(name string, vals []string) bool {
	sample := e.sampleValues(name, vals)
	hits := 0
	for _, v := range sample {
		if isDateValue(v, e.layouts) {
			hits++
		}
	}
	return float64(hits)/float64(len(sample)) > DateThreshold
}

// sampleValues returns all of vals when it fits the bound, else a uniform
// sample without replacement. The generator is seeded from the engine seed
// and the column name, so repeated runs pick the same rows.
func (e *Engine) sampleValues(name string, vals []string) []string {
	if len(vals) <= e.dateSample {
		return vals
	}
	rng := rand.New(rand.NewPCG(e.seed, xxh3.HashString(name)))
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: only the first dateSample slots are needed.
	out := make([]string, e.dateSample)
	for i := 0; i < e.dateSample; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = vals[idx[i]]
	}
	return out
}
