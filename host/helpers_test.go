package host

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anisan-cli/peel/network"
)

const packerBody = `eval(function(p,a,c,k,e,d){e=function(c){return(c<a?'':e(parseInt(c/a)))+((c=c%a)>35?String.fromCharCode(c+29):c.toString(36))};if(!''.replace(/^/,String)){while(c--){d[e(c)]=k[c]||e(c)}k=[function(e){return d[e]}];e=function(){return'\\w+'};c=1};while(c--){if(k[c]){p=p.replace(new RegExp('\\b'+e(c)+'\\b','g'),k[c])}}return p}`

// pack wraps payload, whose words are base36 indexes into words, in a packer block.
func pack(payload string, words ...string) string {
	payload = strings.ReplaceAll(payload, `'`, `\'`)
	return fmt.Sprintf("<script>%s('%s',36,%d,'%s'.split('|'),0,{}))</script>", packerBody, payload, len(words), strings.Join(words, "|"))
}

func newFetcher() *network.Fetcher {
	return network.NewFetcher(&http.Client{Transport: network.NewTransport("peel-test", nil)}, 2*time.Second)
}

// routedFetcher records every requested URL and serves hosts listed in routes from a
// local base URL. Other hosts fail as if they were down.
type routedFetcher struct {
	f      *network.Fetcher
	routes map[string]string
	calls  []string
}

func (r *routedFetcher) Fetch(ctx context.Context, rawURL string, opts ...network.Option) (*network.Page, error) {
	r.calls = append(r.calls, rawURL)

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	base, ok := r.routes[u.Host]
	if !ok {
		return nil, &network.StatusError{URL: rawURL, Code: http.StatusBadGateway}
	}
	return r.f.Fetch(ctx, base+u.RequestURI(), opts...)
}
