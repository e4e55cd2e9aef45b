// Package host maps embed URLs to the strategy that extracts media from them.
//
// A strategy is a (Predicate, Handler) pair. Handlers report failures as errors;
// the Registry turns every failure into "no progress", a Link whose URL is the input.
package host

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
)

var (
	// ErrNoSource is returned by handlers when the page holds no recognizable media URL.
	ErrNoSource = errors.New("no playable source in page")
	// ErrNoMatch is returned by Lookup-based helpers when no strategy claims a URL.
	ErrNoMatch = errors.New("no strategy matches url")
)

// Fetcher downloads pages for handlers.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, opts ...network.Option) (*network.Page, error)
}

// Link is the outcome of a handler.
type Link struct {
	URL     string
	Headers source.Headers
}

// Predicate reports whether a strategy knows how to handle u.
type Predicate func(u *url.URL) bool

// Handler extracts a media URL from the embed page at rawURL.
// headers are the request headers accumulated so far.
type Handler func(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error)

// Entry is a named strategy.
type Entry struct {
	Name   string
	Match  Predicate
	Handle Handler
}

// Registry is an ordered list of strategies. The first matching entry wins.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	log     *log.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{log: log.For("host")}
}

// Register appends e. Names must be unique.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.Match == nil || e.Handle == nil {
		return fmt.Errorf("register strategy %q: name, predicate and handler are required", e.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.Name == e.Name {
			return fmt.Errorf("register strategy %q: already registered", e.Name)
		}
	}
	r.entries = append(r.entries, e)
	return nil
}

// Names lists the registered strategies in dispatch order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the first entry whose predicate accepts rawURL.
func (r *Registry) Lookup(rawURL string) (Entry, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Entry{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.Match(u) {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolve runs the strategy matching rawURL.
//
// The returned link always has a URL: either an absolute http(s) media URL
// different from rawURL, or rawURL itself when nothing matched or the handler failed.
// matched reports whether a strategy claimed the URL.
func (r *Registry) Resolve(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (link Link, matched bool) {
	noProgress := Link{URL: rawURL, Headers: source.Headers{}}

	e, ok := r.Lookup(rawURL)
	if !ok {
		return noProgress, false
	}

	l := r.log.With("strategy", e.Name)

	out, err := e.Handle(ctx, f, rawURL, headers.Clone())
	if err != nil {
		l.Debugf("%s: %v", rawURL, err)
		return noProgress, true
	}

	out.URL = network.Resolve(out.URL, rawURL)
	if !network.IsHTTP(out.URL) || out.URL == rawURL {
		l.Debugf("%s: no progress (got %q)", rawURL, out.URL)
		return noProgress, true
	}

	if out.Headers == nil {
		out.Headers = source.Headers{}
	}
	l.Infof("%s -> %s", rawURL, out.URL)
	return out, true
}
