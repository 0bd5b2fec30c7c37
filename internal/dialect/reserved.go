package dialect

import "strings"

// Reserved is an immutable, lowercase word set.
type Reserved map[string]struct{}

// NewReserved builds a set from the union of the given word lists.
func NewReserved(lists ...[]string) Reserved {
	out := Reserved{}
	for _, l := range lists {
		for _, w := range l {
			out[strings.ToLower(w)] = struct{}{}
		}
	}
	return out
}

// Contains compares word case-insensitively.
func (r Reserved) Contains(word string) bool {
	_, ok := r[strings.ToLower(word)]
	return ok
}

// CommonReserved are keywords reserved by every supported engine.
var CommonReserved = []string{
	"add", "all", "alter", "and", "any", "as", "asc", "between", "by",
	"case", "check", "column", "create", "current", "default",
	"delete", "desc", "distinct", "drop", "else", "exists", "from",
	"group", "having", "in", "index", "insert", "into", "join", "like",
	"not", "null", "on", "or", "order", "primary", "select", "table",
	"then", "union", "unique", "update", "using", "values", "view", "when",
	"where",
}
