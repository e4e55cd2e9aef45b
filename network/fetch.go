package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/source"
)

// maxBody caps how much of a page is read.
const maxBody = 8 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// Page is a fetched document.
type Page struct {
	// URL is the final URL after HTTP and script redirects.
	URL    string
	Status int
	Header http.Header
	Body   string
	// Cookies holds the name=value part of every Set-Cookie seen while fetching.
	Cookies []string
}

// CookieHeader joins Cookies into a Cookie request header value.
func (p *Page) CookieHeader() string {
	return strings.Join(p.Cookies, "; ")
}

type request struct {
	method       string
	headers      source.Headers
	body         string
	followScript bool
}

// Option customizes a single Fetch.
type Option func(*request)

// WithHeaders sends h with the request. Transport defaults fill in whatever h lacks.
func WithHeaders(h source.Headers) Option {
	return func(r *request) {
		r.headers = r.headers.Merge(h)
	}
}

// WithBody sends body as a form POST.
func WithBody(body string) Option {
	return func(r *request) {
		r.method = http.MethodPost
		r.body = body
		if r.headers.Get("Content-Type") == "" {
			r.headers.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
}

// WithoutScriptRedirect disables following window.location redirects.
func WithoutScriptRedirect() Option {
	return func(r *request) {
		r.followScript = false
	}
}

// Fetcher downloads pages with a per-request timeout.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	log     *log.Logger
}

// NewFetcher wraps client. Every request made through the Fetcher is bounded by timeout.
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	return &Fetcher{client: client, timeout: timeout, log: log.For("fetch")}
}

// Fetch downloads rawURL. A non-2xx status yields a *StatusError.
//
// Pages that bounce the browser with window.location are followed once:
// the second request carries the first URL as Referer and the cookies it set.
// If that second request fails the first page is returned.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, opts ...Option) (*Page, error) {
	r := request{method: http.MethodGet, headers: source.Headers{}, followScript: true}
	for _, opt := range opts {
		opt(&r)
	}

	page, err := f.do(ctx, rawURL, r)
	if err != nil {
		return nil, err
	}

	if !r.followScript {
		return page, nil
	}

	target, ok := ScriptRedirect(page.Body, page.URL)
	if !ok || target == page.URL {
		return page, nil
	}

	headers := r.headers.Merge(source.Headers{"Referer": rawURL})
	headers.AddCookies(page.Cookies...)

	next, err := f.do(ctx, target, request{method: http.MethodGet, headers: headers})
	if err != nil {
		f.log.Debugf("script redirect %s -> %s: %v", rawURL, target, err)
		return page, nil
	}

	next.Cookies = append(page.Cookies, next.Cookies...)
	return next, nil
}

func (f *Fetcher) do(ctx context.Context, rawURL string, r request) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}

	return &Page{
		URL:     resp.Request.URL.String(),
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Body:    string(data),
		Cookies: cookiePairs(resp.Header),
	}, nil
}

// cookiePairs keeps the name=value segment of every Set-Cookie header.
func cookiePairs(h http.Header) []string {
	var pairs []string
	for _, v := range h.Values("Set-Cookie") {
		pair, _, _ := strings.Cut(v, ";")
		if pair = strings.TrimSpace(pair); pair != "" {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

var scriptRedirect = regexp.MustCompile(`window\.location(?:\.href)?\s*(?:=\s*|\.replace\s*\(\s*|\.assign\s*\(\s*)['"]([^'"]+)['"]`)

// ScriptRedirect finds a window.location redirect in body and resolves it against base.
func ScriptRedirect(body, base string) (string, bool) {
	m := scriptRedirect.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}

	target := Resolve(m[1], base)
	if !IsHTTP(target) {
		return "", false
	}
	return target, true
}
