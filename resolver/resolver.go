// Package resolver turns embed page candidates into directly playable streams.
//
// A candidate goes through a bounded loop: direct media detection, host strategy
// dispatch, a generic scan of the page and finally peeling the first nested iframe.
package resolver

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/anisan-cli/peel/host"
	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	"github.com/anisan-cli/peel/unpack"
	"github.com/samber/mo"
)

// Fetcher is what the resolver needs from the network layer.
type Fetcher interface {
	host.Fetcher
	Probe(ctx context.Context, rawURL string, headers source.Headers) bool
}

// Config tunes a Resolver.
type Config struct {
	// MaxDepth is the number of nested iframes followed after the first page.
	MaxDepth int
	// AdDomains reject a candidate outright when its URL contains one of them.
	AdDomains []string
	// TrackingDomains reject media URLs found by the generic scan.
	TrackingDomains []string
	// Validate probes resolved media before reporting it as direct.
	Validate bool
	// Concurrency bounds ResolveAll.
	Concurrency int
}

// DefaultConfig returns the resolver defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        3,
		AdDomains:       []string{"google-analytics", "doubleclick"},
		TrackingDomains: []string{"googletagmanager"},
		Concurrency:     4,
	}
}

var mediaExtensions = []string{".mp4", ".m3u8", ".mkv", ".webm"}

// Resolver is safe for concurrent use.
type Resolver struct {
	cfg     Config
	hosts   *host.Registry
	fetcher Fetcher
	log     *log.Logger
}

// New returns a Resolver dispatching to hosts and fetching through f.
func New(cfg Config, hosts *host.Registry, f Fetcher) *Resolver {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return &Resolver{
		cfg:     cfg,
		hosts:   hosts,
		fetcher: f,
		log:     log.For("resolver"),
	}
}

// Resolve follows s until it reaches playable media.
//
// It returns mo.None when the candidate is an ad (or leads to one),
// the stream with IsDirect=false when nothing playable was found,
// and a direct stream with the headers needed to play it otherwise.
func (r *Resolver) Resolve(ctx context.Context, s source.Stream) mo.Option[source.Resolved] {
	if s.URL == "" || r.isAd(s.URL) {
		r.log.Debugf("rejected %q", s.URL)
		return mo.None[source.Resolved]()
	}

	var (
		current = s.URL
		headers = s.Headers.Clone()
		visited = map[string]bool{current: true}
	)

	for depth := 0; ; depth++ {
		l := r.log.With("hop", depth)

		if depth > 0 && r.isAd(current) {
			l.Debugf("%s: nested ad, dropping %s", s.URL, current)
			return mo.None[source.Resolved]()
		}

		if IsDirectMedia(current) {
			return r.direct(ctx, s, current, headers)
		}

		if link, matched := r.hosts.Resolve(ctx, r.fetcher, current, headers); link.URL != current {
			return r.direct(ctx, s, link.URL, headers.Merge(link.Headers))
		} else if matched {
			l.Debugf("%s: strategy made no progress, scanning page", current)
		}

		if ctx.Err() != nil {
			break
		}

		page, err := r.fetcher.Fetch(ctx, current, network.WithHeaders(headers))
		if err != nil {
			l.Debugf("%s: %v", current, err)
			break
		}
		headers.AddCookies(page.Cookies...)

		body := unpack.Unpack(page.Body)
		if media, ok := r.scan(body, page.URL); ok {
			return r.direct(ctx, s, media, headers)
		}

		if depth >= r.cfg.MaxDepth {
			l.Debugf("%s: depth limit reached", current)
			break
		}

		next, ok := nestedFrame(body, page.URL)
		if !ok || next == current || next == page.URL || visited[next] {
			l.Debugf("%s: dead end", current)
			break
		}

		l.Debugf("%s: peeling %s", current, next)
		visited[next] = true
		headers = headers.Merge(source.Headers{"Referer": current})
		current = next
	}

	return mo.Some(unresolved(s))
}

// direct builds the successful result, probing the media first when validation is on.
func (r *Resolver) direct(ctx context.Context, s source.Stream, media string, headers source.Headers) mo.Option[source.Resolved] {
	if !network.IsHTTP(media) {
		return mo.Some(unresolved(s))
	}

	if r.cfg.Validate && !r.fetcher.Probe(ctx, media, headers) {
		r.log.Warnf("%s: %s failed validation", s.URL, media)
		return mo.Some(unresolved(s))
	}

	out := s
	out.URL = media
	out.Headers = headers
	r.log.Infof("%s -> %s", s.URL, media)

	return mo.Some(source.Resolved{Stream: out, IsDirect: true, OriginalURL: s.URL})
}

func (r *Resolver) isAd(rawURL string) bool {
	return containsAny(rawURL, r.cfg.AdDomains)
}

func unresolved(s source.Stream) source.Resolved {
	return source.Resolved{Stream: s, IsDirect: false}
}

// IsDirectMedia reports whether rawURL points at a media file or manifest by its extension.
// Query strings are allowed; URLs mentioning html are not considered media.
func IsDirectMedia(rawURL string) bool {
	if strings.Contains(strings.ToLower(rawURL), "html") {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	ext := strings.ToLower(path.Ext(u.Path))
	for _, e := range mediaExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	s = strings.ToLower(s)
	for _, n := range needles {
		if n != "" && strings.Contains(s, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
