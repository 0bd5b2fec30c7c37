package httpds

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// noWait replaces the backoff wait so retry tests run instantly.
func noWait(ctx context.Context, _ time.Duration) error { return ctx.Err() }

// TestNewClient_Defaults verifies defaults and TLS wiring when no custom
// Transport is supplied.
func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{InsecureSkipVerify: true})

	if c.httpClient.Timeout != 30*time.Second {
		t.Fatalf("Timeout = %v, want 30s", c.httpClient.Timeout)
	}
	if c.maxRetries != 0 {
		t.Fatalf("maxRetries = %d, want 0", c.maxRetries)
	}
	if c.initialBackoff != 200*time.Millisecond || c.maxBackoff != 5*time.Second {
		t.Fatalf("backoff = %v..%v, want 200ms..5s", c.initialBackoff, c.maxBackoff)
	}
	tr, ok := c.httpClient.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", c.httpClient.Transport)
	}
	if tr.TLSClientConfig == nil || !tr.TLSClientConfig.InsecureSkipVerify {
		t.Fatalf("expected InsecureSkipVerify=true when configured")
	}
}

// TestGet_RetriesTransientStatus checks that 503s are retried and the first
// non-retryable response is returned.
func TestGet_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "csv2ddl" {
			t.Errorf("User-Agent = %q, want csv2ddl", got)
		}
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, "ok")
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{MaxRetries: 3})
	c.wait = noWait

	resp, err := c.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestGet_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{MaxRetries: 2})
	c.wait = noWait

	_, err := c.Get(context.Background(), srv.URL, nil)
	if err == nil || !strings.Contains(err.Error(), "retryable status 429") {
		t.Fatalf("Get() error = %v, want retryable status 429", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestGet_NonRetryableIsReturned(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{MaxRetries: 5})
	c.wait = noWait

	resp, err := c.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	resp.Body.Close()
	if n := atomic.LoadInt32(&calls); resp.StatusCode != http.StatusNotFound || n != 1 {
		t.Fatalf("status=%d calls=%d, want 404 after one call", resp.StatusCode, n)
	}
}

func TestGet_ContextCanceledDuringBackoff(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{MaxRetries: 3, InitialBackoff: time.Hour, MaxBackoff: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, srv.URL, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Get() error = %v, want deadline exceeded", err)
	}
}

func TestBackoffDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		retry int
		want  time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{10, time.Second},
		{64, time.Second},
	}
	for _, c := range cases {
		if got := backoffDuration(100*time.Millisecond, c.retry, time.Second); got != c.want {
			t.Fatalf("backoffDuration(retry=%d) = %v, want %v", c.retry, got, c.want)
		}
	}
}
