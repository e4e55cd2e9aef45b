package network

import (
	"net/http"
	"strings"

	"github.com/anisan-cli/peel/constant"
)

const (
	acceptHTML     = constant.Accept
	acceptLanguage = constant.AcceptLanguage
)

// defaultHeaders sets headers the request does not already carry.
type defaultHeaders struct {
	next    http.RoundTripper
	headers map[string]string
}

func (t *defaultHeaders) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" && req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.next.RoundTrip(req)
}

// hostRouter picks the fingerprinting transport for configured domains.
type hostRouter struct {
	domains     []string
	fingerprint http.RoundTripper
	plain       http.RoundTripper
}

func (r *hostRouter) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme == "https" && r.matches(req.URL.Hostname()) {
		return r.fingerprint.RoundTrip(req)
	}
	return r.plain.RoundTrip(req)
}

func (r *hostRouter) matches(host string) bool {
	host = strings.ToLower(host)
	for _, d := range r.domains {
		d = strings.ToLower(strings.TrimPrefix(d, "."))
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
