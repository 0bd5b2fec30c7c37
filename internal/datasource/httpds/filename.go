package httpds

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// NameFromURL returns the file name a URL refers to: the last path segment,
// e.g. "orders.csv" for https://host/exports/orders.csv?sig=abc. When the
// path has no usable segment it falls back to a stable hash-based name so
// the caller still gets a deterministic table name.
func NameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil {
		// u.Path is already unescaped
		if base := path.Base(u.Path); base != "." && base != "/" && strings.TrimSpace(base) != "" {
			return base
		}
	}
	return "download_" + strconv.FormatUint(xxh3.HashString(rawURL), 16)
}
