package host

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
)

var (
	robotlink         = regexp.MustCompile(`robotlink['"]\)\.innerHTML\s*=\s*['"]([^'"]+)['"]\s*\+\s*([^;]+)`)
	robotlinkFallback = regexp.MustCompile(`id=['"]robotlink['"]>([^<]+)`)
	quoted            = regexp.MustCompile(`['"]([^'"]+)['"]`)
	substringCall     = regexp.MustCompile(`substring\((\d+)\)`)
)

type streamtape struct {
	origin string
}

// resolve rebuilds the get_video link the page assembles in
//
//	document.getElementById('robotlink').innerHTML = '//host/get_video?id=...' + ('xyztoken').substring(2).substring(1);
func (s streamtape) resolve(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	page, body, err := fetchEmbed(ctx, f, rawURL, headers)
	if err != nil {
		return Link{}, err
	}

	referer := source.Headers{"Referer": s.origin + "/"}

	if m := robotlink.FindStringSubmatch(body); m != nil {
		link := m[1] + joinRobotParts(m[2])
		return Link{URL: network.Resolve(link, s.origin+"/"), Headers: withCookies(referer, page)}, nil
	}

	if m := robotlinkFallback.FindStringSubmatch(body); m != nil {
		return Link{URL: network.Resolve(strings.TrimSpace(m[1]), s.origin+"/"), Headers: withCookies(referer, page)}, nil
	}

	return Link{}, fmt.Errorf("streamtape: %w", ErrNoSource)
}

// joinRobotParts evaluates the concatenated string literals, applying each substring(n) call in order.
func joinRobotParts(expr string) string {
	var b strings.Builder
	for _, part := range strings.Split(expr, "+") {
		lit := quoted.FindStringSubmatch(part)
		if lit == nil {
			continue
		}

		val := lit[1]
		for _, sub := range substringCall.FindAllStringSubmatch(part, -1) {
			n, err := strconv.Atoi(sub[1])
			if err != nil {
				continue
			}
			if n >= len(val) {
				val = ""
				break
			}
			val = val[n:]
		}
		b.WriteString(val)
	}
	return b.String()
}
