package host

import (
	"context"
	"fmt"
	"regexp"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
)

var (
	myviPatterns = []*regexp.Regexp{
		regexp.MustCompile(`vurl\s*=\s*["']([^"']+)["']`),
		regexp.MustCompile(`["'](?:file|src|url|stream_url)["']\s*:\s*["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`),
		regexp.MustCompile(`["'](https?://[^"']+\.(?:mp4|m3u8)[^"']*)["']`),
		regexp.MustCompile(`source\s+src=["']([^"']+\.(?:mp4|m3u8)[^"']*)`),
	}
	myviID  = regexp.MustCompile(`/(?:embed/|watch/|video/)([a-zA-Z0-9_-]+)`)
	myviAPI = regexp.MustCompile(`["'](?:url|src|file)["']\s*:\s*["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`)
)

type myvi struct {
	origin string
}

// resolve scans the player page and falls back to the video API when the page only holds a loader.
func (m myvi) resolve(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	referer := source.Headers{"Referer": m.origin + "/"}

	page, body, err := fetchEmbed(ctx, f, rawURL, headers.Merge(referer))
	if err != nil {
		return Link{}, err
	}

	if media, ok := firstMatch(body, myviPatterns...); ok {
		return Link{URL: network.Resolve(media, rawURL), Headers: withCookies(referer, page)}, nil
	}

	id := myviID.FindStringSubmatch(rawURL)
	if id == nil {
		return Link{}, fmt.Errorf("myvi: %w", ErrNoSource)
	}

	api, err := f.Fetch(ctx, m.origin+"/api/video/"+id[1],
		network.WithHeaders(withCookies(source.Headers{"Referer": rawURL}, page)),
		network.WithoutScriptRedirect(),
	)
	if err != nil {
		return Link{}, fmt.Errorf("myvi: api: %w", err)
	}

	media, ok := firstMatch(api.Body, myviAPI)
	if !ok {
		return Link{}, fmt.Errorf("myvi: api: %w", ErrNoSource)
	}
	return Link{URL: network.Resolve(media, rawURL), Headers: withCookies(referer, page)}, nil
}
