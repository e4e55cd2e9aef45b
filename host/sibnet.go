package host

import (
	"context"
	"fmt"
	"regexp"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
)

var sibnetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)file\s*:\s*["']([^"']*\.mp4[^"']*)["']`),
	regexp.MustCompile(`(?i)src\s*:\s*["']([^"']*\.mp4[^"']*)["']`),
	regexp.MustCompile(`(?i)["']((?:https?:)?//[^"'\s]+\.mp4[^"'\s]*)["']`),
}

type sibnet struct {
	origin string
}

func (s sibnet) resolve(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	referer := source.Headers{"Referer": s.origin + "/"}

	page, body, err := fetchEmbed(ctx, f, rawURL, headers.Merge(referer))
	if err != nil {
		return Link{}, err
	}

	media, ok := firstMatch(body, sibnetPatterns...)
	if !ok {
		return Link{}, fmt.Errorf("sibnet: %w", ErrNoSource)
	}

	// Sibnet serves root-relative paths such as /v/<hash>/123.mp4.
	return Link{
		URL:     network.Resolve(media, s.origin+"/"),
		Headers: withCookies(referer, page),
	}, nil
}
