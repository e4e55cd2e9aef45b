package resolver

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/peel/network"
)

var iframeSrc = regexp.MustCompile(`(?i)<iframe\s+[^>]*src=["']([^"']+)["']`)

// nestedFrame returns the first iframe of body that points at an http(s) page,
// resolved against base. Iframes written from scripts are found by a regex scan
// when the parsed document has none.
func nestedFrame(body, base string) (string, bool) {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		var found string
		doc.Find("iframe[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			found = frameTarget(sel.AttrOr("src", ""), base)
			return found == ""
		})
		if found != "" {
			return found, true
		}
	}

	for _, m := range iframeSrc.FindAllStringSubmatch(body, -1) {
		if target := frameTarget(m[1], base); target != "" {
			return target, true
		}
	}
	return "", false
}

func frameTarget(src, base string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "#") {
		return ""
	}

	target := network.Resolve(src, base)
	if !network.IsHTTP(target) {
		return ""
	}
	return target
}
