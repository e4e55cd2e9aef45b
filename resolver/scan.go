package resolver

import (
	"regexp"

	"github.com/anisan-cli/peel/network"
)

// scanPatterns are tried in order; the first acceptable candidate wins.
var scanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://[^"']+\.m3u8[^"']*`),
	regexp.MustCompile(`https?://[^"']+\.mp4[^"']*`),
	regexp.MustCompile(`file\s*:\s*["']([^"']+)["']`),
}

// scan looks for a media URL in body. Relative and protocol-relative candidates
// are resolved against base.
func (r *Resolver) scan(body, base string) (string, bool) {
	for _, re := range scanPatterns {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			candidate := m[0]
			if len(m) > 1 {
				candidate = m[1]
			}

			candidate = network.Resolve(candidate, base)
			if !network.IsHTTP(candidate) || candidate == base {
				continue
			}
			if containsAny(candidate, r.cfg.TrackingDomains) {
				r.log.Debugf("skipping tracker %s", candidate)
				continue
			}
			return candidate, true
		}
	}
	return "", false
}
