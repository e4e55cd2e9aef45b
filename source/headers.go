// Package source defines the stream candidates exchanged between scrapers and the resolver.
package source

import (
	"net/http"
	"strings"
)

// Headers is a set of HTTP request headers keyed by canonical header name.
type Headers map[string]string

// Clone returns a canonicalized copy of h. A nil receiver yields an empty set.
func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[http.CanonicalHeaderKey(k)] = v
	}
	return out
}

// Get returns the value stored under the canonical form of k.
func (h Headers) Get(k string) string {
	if v, ok := h[http.CanonicalHeaderKey(k)]; ok {
		return v
	}
	return h[k]
}

// Set stores v under the canonical form of k. Empty values are ignored.
func (h Headers) Set(k, v string) {
	if v == "" {
		return
	}
	h[http.CanonicalHeaderKey(k)] = v
}

// Merge returns a new set holding h overlaid by every layer in order.
// A later layer overrides a key only when it carries a non-empty value.
func (h Headers) Merge(layers ...Headers) Headers {
	out := h.Clone()
	for _, layer := range layers {
		for k, v := range layer {
			out.Set(k, v)
		}
	}
	return out
}

// HTTP converts h into an http.Header.
func (h Headers) HTTP() http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		out.Set(k, v)
	}
	return out
}

// AddCookies appends cookie pairs to the Cookie header, replacing pairs with the same name.
func (h Headers) AddCookies(pairs ...string) {
	if len(pairs) == 0 {
		return
	}

	var (
		order  []string
		values = make(map[string]string)
	)
	add := func(pair string) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			return
		}
		name, _, _ := strings.Cut(pair, "=")
		if _, seen := values[name]; !seen {
			order = append(order, name)
		}
		values[name] = pair
	}

	for _, pair := range strings.Split(h.Get("Cookie"), ";") {
		add(pair)
	}
	for _, pair := range pairs {
		add(pair)
	}

	joined := make([]string, 0, len(order))
	for _, name := range order {
		joined = append(joined, values[name])
	}
	h.Set("Cookie", strings.Join(joined, "; "))
}
