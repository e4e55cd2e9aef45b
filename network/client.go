// Package network provides the HTTP plumbing shared by host strategies and metadata clients.
package network

import (
	"net/http"
	"time"
)

// Client is the shared HTTP client for metadata APIs.
// Embed hosts go through a Fetcher built on top of NewTransport instead.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with larger connection pools.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 20
	t.MaxConnsPerHost = 50
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 20 * time.Second
	return t
}

// NewTransport returns the RoundTripper used for embed pages.
// It fills in browser-like default headers and sends requests for fingerprintDomains
// (and their subdomains) through a Chrome TLS fingerprint.
func NewTransport(userAgent string, fingerprintDomains []string) http.RoundTripper {
	return &defaultHeaders{
		next: &hostRouter{
			domains:     fingerprintDomains,
			fingerprint: newFingerprintTransport(),
			plain:       newTransport(),
		},
		headers: map[string]string{
			"User-Agent":      userAgent,
			"Accept":          acceptHTML,
			"Accept-Language": acceptLanguage,
		},
	}
}
