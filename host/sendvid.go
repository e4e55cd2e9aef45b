package host

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
)

var (
	sendvidPage     = regexp.MustCompile(`(?i)sendvid\.com/([a-z0-9]+)`)
	sendvidSource   = regexp.MustCompile(`video_source\s*:\s*["']([^"']+\.mp4[^"']*)["']`)
	sendvidPatterns = []*regexp.Regexp{
		regexp.MustCompile(`file\s*:\s*["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`),
		regexp.MustCompile(`["'](https?://[^"']+\.mp4[^"']*)["']`),
	}
)

type sendvid struct {
	origin string
}

// embedURL rewrites sendvid.com/<id> to sendvid.com/embed/<id>.
func embedURL(rawURL string) string {
	if strings.Contains(rawURL, "/embed/") {
		return rawURL
	}
	return sendvidPage.ReplaceAllString(rawURL, "sendvid.com/embed/$1")
}

func (s sendvid) resolve(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	referer := source.Headers{"Referer": s.origin + "/"}
	embed := embedURL(rawURL)

	page, body, err := fetchEmbed(ctx, f, embed, headers.Merge(referer))
	if err != nil {
		return Link{}, err
	}

	media, ok := firstMatch(body, sendvidSource)
	if !ok {
		media, ok = videoSource(body)
	}
	if !ok {
		media, ok = firstMatch(body, sendvidPatterns...)
	}
	if !ok {
		return Link{}, fmt.Errorf("sendvid: %w", ErrNoSource)
	}

	return Link{URL: network.Resolve(media, embed), Headers: withCookies(referer, page)}, nil
}

// videoSource returns the first <source src> pointing at mp4 or m3u8 media.
func videoSource(body string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false
	}

	var found string
	doc.Find("source[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		lower := strings.ToLower(src)
		if strings.Contains(lower, ".mp4") || strings.Contains(lower, ".m3u8") {
			found = src
			return false
		}
		return true
	})
	return found, found != ""
}
