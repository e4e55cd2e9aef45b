package host

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	"github.com/samber/lo"
)

var uqloadPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sources\s*:\s*\[["']([^"']+\.(?:mp4|m3u8))["']\]`),
	regexp.MustCompile(`src\s*:\s*["']([^"']+\.(?:mp4|m3u8))["']`),
	regexp.MustCompile(`file\s*:\s*["']([^"']+\.(?:mp4|m3u8))["']`),
	regexp.MustCompile(`vurl\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)["'](https?://[^"']+\.(?:mp4|m3u8)[^"']*)["']`),
}

// uqload serves the same embed path from every uqload domain, and single domains are
// frequently down. The embed URL is tried first; uqload domains then rotate through mirrors.
type uqload struct {
	mirrors []string
}

// candidates returns rawURL followed by the mirror URLs when rawURL is on a uqload domain.
func (q uqload) candidates(u *url.URL) []string {
	out := []string{u.String()}
	if !strings.HasPrefix(Label(u.Hostname()), "uqload") {
		return out
	}

	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	for _, mirror := range q.mirrors {
		out = append(out, strings.TrimSuffix(mirror, "/")+path)
	}
	return lo.Uniq(out)
}

func (q uqload) resolve(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Link{}, err
	}

	var errs []error
	for _, try := range q.candidates(u) {
		referer := source.Headers{"Referer": network.Origin(try) + "/"}

		page, body, err := fetchEmbed(ctx, f, try, headers.Merge(referer))
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if media, ok := firstMatch(body, uqloadPatterns...); ok {
			return Link{URL: network.Resolve(media, try), Headers: withCookies(referer, page)}, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", try, ErrNoSource))
	}

	return Link{}, fmt.Errorf("uqload: %w", errors.Join(errs...))
}
