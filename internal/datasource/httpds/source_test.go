package httpds

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSource_Open(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/exports/orders.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		io.WriteString(w, "id,amount\n1,2.5\n")
	})
	mux.HandleFunc("/big.csv", func(w http.ResponseWriter, r *http.Request) {
		// no Content-Length: force chunked so the size check happens on read
		w.(http.Flusher).Flush()
		io.WriteString(w, strings.Repeat("x", 64))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(Config{})
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		src := NewSource(client, srv.URL+"/exports/orders.csv?sig=abc", 0)
		if got := src.Name(); got != "orders.csv" {
			t.Fatalf("Name() = %q, want orders.csv", got)
		}
		rc, err := src.Open(ctx)
		if err != nil {
			t.Fatalf("Open() unexpected error: %v", err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if string(b) != "id,amount\n1,2.5\n" {
			t.Fatalf("body = %q", b)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := NewSource(client, srv.URL+"/missing.csv", 0).Open(ctx)
		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Fatalf("Open() error = %v, want 404", err)
		}
	})

	t.Run("body_over_limit", func(t *testing.T) {
		rc, err := NewSource(client, srv.URL+"/big.csv", 16).Open(ctx)
		if err != nil {
			t.Fatalf("Open() unexpected error: %v", err)
		}
		defer rc.Close()
		_, err = io.ReadAll(rc)
		if err == nil || !strings.Contains(err.Error(), "exceeds size limit") {
			t.Fatalf("ReadAll error = %v, want size limit error", err)
		}
	})
}

func TestNameFromURL(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"https://host/a/b/data.xlsx", "data.xlsx"},
		{"https://host/a/my%20file.csv?x=1", "my file.csv"},
		{"http://host/report.csv#frag", "report.csv"},
	}
	for _, c := range cases {
		if got := NameFromURL(c.in); got != c.want {
			t.Fatalf("NameFromURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	// no path segment: stable fallback
	a, b := NameFromURL("https://host/"), NameFromURL("https://host/")
	if a != b || !strings.HasPrefix(a, "download_") {
		t.Fatalf("fallback names = %q, %q; want equal download_ prefix", a, b)
	}
}
