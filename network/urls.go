package network

import (
	"net/url"
	"strings"
)

// Resolve turns ref into an absolute URL using base.
// Protocol-relative references become https. Absolute references are returned untouched
// so CDN query strings keep their original encoding.
func Resolve(ref, base string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case hasHTTPPrefix(ref):
		return ref
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	}

	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return ref
	}

	if strings.HasPrefix(ref, "/") {
		return b.Scheme + "://" + b.Host + ref
	}

	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// Origin returns scheme://host of rawURL, or "" when it does not parse.
func Origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// IsHTTP reports whether rawURL is an absolute http(s) URL.
func IsHTTP(rawURL string) bool {
	if !hasHTTPPrefix(rawURL) {
		return false
	}
	u, err := url.Parse(rawURL)
	return err == nil && u.Host != ""
}

func hasHTTPPrefix(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
