package host

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Label returns the registrable label of host, without its public suffix:
// "sibnet" for video.sibnet.ru, "vidmoly" for vidmoly.to.
func Label(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}

	suffix, _ := publicsuffix.PublicSuffix(registrable)
	label := strings.TrimSuffix(strings.TrimSuffix(registrable, suffix), ".")
	if label == "" {
		return registrable
	}
	return label
}

// Domains matches URLs whose registrable label is one of labels.
func Domains(labels ...string) Predicate {
	return func(u *url.URL) bool {
		label := Label(u.Hostname())
		for _, l := range labels {
			if label == l {
				return true
			}
		}
		return false
	}
}

// LabelPrefix matches URLs whose registrable label starts with one of prefixes.
func LabelPrefix(prefixes ...string) Predicate {
	return func(u *url.URL) bool {
		label := Label(u.Hostname())
		for _, p := range prefixes {
			if strings.HasPrefix(label, p) {
				return true
			}
		}
		return false
	}
}

// Any matches when one of preds does.
func Any(preds ...Predicate) Predicate {
	return func(u *url.URL) bool {
		for _, p := range preds {
			if p(u) {
				return true
			}
		}
		return false
	}
}
