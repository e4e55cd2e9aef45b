package host

import (
	"context"
	"fmt"
	"regexp"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
)

// Hosts built on the same packed JW Player setup. Each one takes the embed page as Referer.

var (
	moonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`file\s*:\s*["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`),
	}
	luluvidPatterns = []*regexp.Regexp{
		regexp.MustCompile(`sources\s*:\s*\[["']([^"']+\.(?:m3u8|mp4)[^"']*)["']\]`),
		regexp.MustCompile(`file\s*:\s*["']([^"']+\.(?:m3u8|mp4)[^"']*)["']`),
	}
	hgcloudPatterns = []*regexp.Regexp{
		regexp.MustCompile(`["'](https?://[^"']+\.m3u8[^"']*)["']`),
	}
	mixdropPatterns = []*regexp.Regexp{
		regexp.MustCompile(`wurl\s*=\s*"([^"]+)"`),
		regexp.MustCompile(`(?:source|src)\s*[=:]\s*["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`),
	}
)

func resolveMoon(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	return selfReferred(ctx, f, "moon", rawURL, headers, moonPatterns, nil)
}

func resolveLuluvid(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	return selfReferred(ctx, f, "luluvid", rawURL, headers, luluvidPatterns, decodeManifest)
}

func resolveHGCloud(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	return selfReferred(ctx, f, "hgcloud", rawURL, headers, hgcloudPatterns, nil)
}

func resolveMixdrop(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	link, err := selfReferred(ctx, f, "mixdrop", rawURL, headers, mixdropPatterns, nil)
	if err != nil {
		return Link{}, err
	}
	link.Headers.Set("Referer", network.Origin(rawURL)+"/")
	return link, nil
}

func selfReferred(
	ctx context.Context,
	f Fetcher,
	name, rawURL string,
	headers source.Headers,
	patterns []*regexp.Regexp,
	transform func(string) string,
) (Link, error) {
	page, body, err := fetchEmbed(ctx, f, rawURL, headers)
	if err != nil {
		return Link{}, err
	}

	media, ok := firstMatch(body, patterns...)
	if !ok {
		return Link{}, fmt.Errorf("%s: %w", name, ErrNoSource)
	}
	if transform != nil {
		media = transform(media)
	}

	return Link{
		URL:     network.Resolve(media, rawURL),
		Headers: withCookies(source.Headers{"Referer": rawURL}, page),
	}, nil
}
