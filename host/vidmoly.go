package host

import (
	"context"
	"fmt"
	"regexp"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
)

var vidmolyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)file\s*:\s*["']([^"']+\.(?:m3u8|mp4)[^"']*)["']`),
	regexp.MustCompile(`(?i)sources\s*:\s*\[\s*\{\s*file\s*:\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)["'](https?://[^"']+\.(?:m3u8|mp4)[^"']*)["']`),
}

type vidmoly struct {
	origin string
}

// resolve follows the interstitial redirect itself so the player page is
// requested with the vidmoly Referer rather than the interstitial URL.
func (v vidmoly) resolve(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	hostHeaders := source.Headers{"Referer": v.origin + "/", "Origin": v.origin}
	headers = headers.Merge(hostHeaders)

	page, err := f.Fetch(ctx, rawURL, network.WithHeaders(headers), network.WithoutScriptRedirect())
	if err != nil {
		return Link{}, err
	}

	if target, ok := network.ScriptRedirect(page.Body, page.URL); ok && target != rawURL {
		next, err := f.Fetch(ctx, target, network.WithHeaders(withCookies(headers, page)), network.WithoutScriptRedirect())
		if err == nil {
			next.Cookies = append(page.Cookies, next.Cookies...)
			page = next
		}
	}

	media, ok := firstMatch(unpackBody(page), vidmolyPatterns...)
	if !ok {
		return Link{}, fmt.Errorf("vidmoly: %w", ErrNoSource)
	}

	return Link{URL: media, Headers: withCookies(hostHeaders, page)}, nil
}
