// Package http provides an HTTP-based implementation of pagemeta.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagemeta"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent identifies the fetcher to remote servers.
const DefaultUserAgent = "pagemeta/1.0 (+https://github.com/fwojciec/pagemeta)"

// Ensure Fetcher implements pagemeta.Fetcher at compile time.
var _ pagemeta.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
// Redirects follow the http.Client default policy (at most 10 hops).
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for the whole request, including reading
// the body. Zero, the default, means no timeout beyond the context.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize limits how many bytes of the response body are read.
// Larger bodies fail with EFETCH. Zero, the default, means unlimited.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. The client's own Timeout is
// overridden when WithTimeout is also given.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	if f.timeout > 0 {
		c := *f.client
		c.Timeout = f.timeout
		f.client = &c
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8
// according to the response Content-Type and any <meta charset> in the body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagemeta.Errorf(pagemeta.EFETCH, "%s", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", pagemeta.Errorf(pagemeta.EFETCH, "%s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", pagemeta.Errorf(pagemeta.EFETCH, "Request failed with status code %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.maxBodySize > 0 {
		body = io.LimitReader(resp.Body, f.maxBodySize+1)
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", pagemeta.Errorf(pagemeta.EFETCH, "%s", err)
	}
	if f.maxBodySize > 0 && int64(len(raw)) > f.maxBodySize {
		return "", pagemeta.Errorf(pagemeta.EFETCH, "response body exceeds %d bytes", f.maxBodySize)
	}

	return decode(raw, resp.Header.Get("Content-Type"))
}

// decode converts raw to UTF-8. Unknown or missing charsets fall back to
// the detection rules of the HTML5 spec.
func decode(raw []byte, contentType string) (string, error) {
	enc, _, _ := charset.DetermineEncoding(raw, contentType)
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", pagemeta.Errorf(pagemeta.EFETCH, "failed to decode response body: %s", err)
	}
	return string(decoded), nil
}
