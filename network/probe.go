package network

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/anisan-cli/peel/source"
)

// playableTypes are the Content-Type fragments accepted by Probe.
var playableTypes = []string{"video", "mpegurl", "octet-stream"}

// Probe requests the first two bytes of rawURL and reports whether the server
// answers with playable media.
func (f *Fetcher) Probe(ctx context.Context, rawURL string, headers source.Headers) bool {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Range", "bytes=0-1")

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debugf("probe %s: %v", rawURL, err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		f.log.Debugf("probe %s: status %d", rawURL, resp.StatusCode)
		return false
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	for _, t := range playableTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}
