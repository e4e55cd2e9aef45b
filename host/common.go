package host

import (
	"context"
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	"github.com/anisan-cli/peel/unpack"
)

// fetchEmbed downloads rawURL and returns the page together with its unpacked body.
func fetchEmbed(ctx context.Context, f Fetcher, rawURL string, headers source.Headers, opts ...network.Option) (*network.Page, string, error) {
	opts = append([]network.Option{network.WithHeaders(headers)}, opts...)
	page, err := f.Fetch(ctx, rawURL, opts...)
	if err != nil {
		return nil, "", err
	}
	return page, unpack.Unpack(page.Body), nil
}

// firstMatch tries patterns in order and returns the first capture group of the first hit,
// or the whole match for patterns without groups.
func firstMatch(body string, patterns ...*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			return m[1], true
		}
		return m[0], true
	}
	return "", false
}

// withCookies returns base plus the cookies page set.
func withCookies(base source.Headers, page *network.Page) source.Headers {
	out := base.Clone()
	if page != nil {
		out.AddCookies(page.Cookies...)
	}
	return out
}

// decodeManifest unwraps base64 encoded manifest URLs.
// Both data-URI style values ("...;base64,<data>") and bare base64 of an http URL are accepted.
func decodeManifest(v string) string {
	if strings.Contains(v, "base64") {
		if _, data, ok := strings.Cut(v, ","); ok {
			if decoded, ok := decodeBase64(data); ok {
				return decoded
			}
		}
		return v
	}

	if network.IsHTTP(v) || strings.HasPrefix(v, "//") {
		return v
	}
	if decoded, ok := decodeBase64(v); ok && network.IsHTTP(decoded) {
		return decoded
	}
	return v
}

func decodeBase64(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(s); err == nil {
			return string(data), true
		}
	}
	return "", false
}

func unpackBody(page *network.Page) string {
	return unpack.Unpack(page.Body)
}
