package host

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
)

var passMD5 = regexp.MustCompile(`\$\.get\(['"]/pass_md5/([^'"]+)['"]`)

type dood struct {
	now   func() time.Time
	nonce func() string
}

// resolve performs the pass_md5 token exchange. The endpoint answers with the
// media prefix; the playable URL is prefix + nonce + ?token=<token>&expiry=<unix ms>.
func (d dood) resolve(ctx context.Context, f Fetcher, rawURL string, headers source.Headers) (Link, error) {
	origin := network.Origin(rawURL)
	if origin == "" {
		return Link{}, fmt.Errorf("dood: bad url %q", rawURL)
	}

	page, body, err := fetchEmbed(ctx, f, rawURL, headers)
	if err != nil {
		return Link{}, err
	}

	m := passMD5.FindStringSubmatch(body)
	if m == nil {
		return Link{}, fmt.Errorf("dood: pass_md5: %w", ErrNoSource)
	}

	pass, err := f.Fetch(ctx, origin+"/pass_md5/"+m[1],
		network.WithHeaders(withCookies(source.Headers{"Referer": rawURL}, page)),
		network.WithoutScriptRedirect(),
	)
	if err != nil {
		return Link{}, fmt.Errorf("dood: pass_md5: %w", err)
	}

	prefix := strings.TrimSpace(pass.Body)
	if !network.IsHTTP(prefix) {
		return Link{}, fmt.Errorf("dood: unexpected pass_md5 answer %q: %w", prefix, ErrNoSource)
	}

	token := path.Base(m[1])
	expiry := strconv.FormatInt(d.now().UnixMilli(), 10)

	cookies := withCookies(source.Headers{"Referer": origin + "/"}, page)
	cookies.AddCookies(pass.Cookies...)

	return Link{
		URL:     prefix + d.nonce() + "?token=" + token + "&expiry=" + expiry,
		Headers: cookies,
	}, nil
}
