package host

import (
	"context"
	"fmt"
	"regexp"

	"github.com/anisan-cli/peel/source"
)

var voePatterns = []*regexp.Regexp{
	regexp.MustCompile(`'hls'\s*:\s*'([^']+)'`),
	regexp.MustCompile(`"hls"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`https?://[^"']+\.m3u8[^"']*`),
}

// resolveVoe reads the hls source of the player config.
// The landing page bounces through window.location.href; the fetcher follows it.
func resolveVoe(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	page, body, err := fetchEmbed(ctx, f, rawURL, headers)
	if err != nil {
		return Link{}, err
	}

	media, ok := firstMatch(body, voePatterns...)
	if !ok {
		return Link{}, fmt.Errorf("voe: %w", ErrNoSource)
	}

	return Link{
		URL:     decodeManifest(media),
		Headers: withCookies(source.Headers{"Referer": rawURL}, page),
	}, nil
}
