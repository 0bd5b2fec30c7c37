package httpds

import (
	"context"
	"fmt"
	"io"
)

// DefaultMaxBytes caps a download when the caller does not.
const DefaultMaxBytes int64 = 256 << 20

// Source is a datasource.Source backed by an HTTP GET.
type Source struct {
	client   *Client
	url      string
	maxBytes int64
}

// NewSource returns a Source reading url through client. Bodies longer than
// maxBytes fail rather than truncate, so a partial file is never parsed as a
// complete one. maxBytes <= 0 selects DefaultMaxBytes.
func NewSource(client *Client, url string, maxBytes int64) *Source {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Source{client: client, url: url, maxBytes: maxBytes}
}

// Name returns the last path segment of the URL.
func (s *Source) Name() string { return NameFromURL(s.url) }

// Open fetches the URL. Any non-2xx status is an error.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("httpds: GET %s: unexpected status %s", s.url, resp.Status)
	}
	if resp.ContentLength > s.maxBytes {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("httpds: GET %s: body of %d bytes exceeds limit of %d", s.url, resp.ContentLength, s.maxBytes)
	}
	return &limitedBody{body: resp.Body, remaining: s.maxBytes, url: s.url}, nil
}

// limitedBody errors once more than the limit has been read.
type limitedBody struct {
	body      io.ReadCloser
	remaining int64
	url       string
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, fmt.Errorf("httpds: GET %s: body exceeds size limit", l.url)
	}
	// read one byte past the limit so overflow is detectable
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.body.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n + int(l.remaining), fmt.Errorf("httpds: GET %s: body exceeds size limit", l.url)
	}
	return n, err
}

func (l *limitedBody) Close() error { return l.body.Close() }
