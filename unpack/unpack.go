// Package unpack decodes scripts compressed with Dean Edwards' P.A.C.K.E.R.
//
// Embed hosts ship their player setup as
//
//	eval(function(p,a,c,k,e,d){...}('payload',radix,count,'w0|w1|...'.split('|'),0,{}))
//
// where every word of the payload is an index into the keyword list written in base radix.
package unpack

import (
	"regexp"
	"strconv"
	"strings"
)

// maxPasses bounds how many nested packing layers are peeled by one call.
// Every pass can grow the text, so the bound also caps the work per call.
const maxPasses = 4

// maxCount rejects blocks whose dictionary would be unreasonably large.
const maxCount = 1 << 20

var (
	preamble = regexp.MustCompile(`eval\s*\(\s*function\s*\(\s*p\s*,\s*a\s*,\s*c\s*,\s*k\s*,\s*e\s*,\s*[dr]\s*\)`)
	bodyEnd  = regexp.MustCompile(`\}\s*\(\s*['"]`)
	args     = regexp.MustCompile(`(?s)^\}\s*\(\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")\s*\.split\(\s*['"]\|['"]\s*\)[^)]*\)(?:\s*\))?`)
	word     = regexp.MustCompile(`\b\w+\b`)

	unescape = strings.NewReplacer(`\\`, `\`, `\'`, `'`, `\"`, `"`)
)

// IsPacked reports whether s contains at least one packed block.
func IsPacked(s string) bool {
	return strings.Contains(s, "p,a,c,k,e,") && preamble.MatchString(s)
}

// Unpack replaces every packed block of script with its decoded source.
// Text outside the blocks is preserved, blocks that fail to parse are kept verbatim,
// and scripts without a packed block are returned unchanged.
// Nested packing is decoded one layer per pass until the output stops changing,
// for at most maxPasses layers. Up to that depth Unpack(Unpack(s)) == Unpack(s);
// deeper scripts come back still packed and a further call peels the next layers.
func Unpack(script string) string {
	out := script
	for i := 0; i < maxPasses && IsPacked(out); i++ {
		next := unpackBlocks(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func unpackBlocks(s string) string {
	var (
		b      strings.Builder
		cursor int
	)

	for _, loc := range preamble.FindAllStringIndex(s, -1) {
		if loc[0] < cursor {
			continue
		}

		decoded, end, ok := decodeBlock(s, loc[1])
		if !ok {
			continue
		}

		b.WriteString(s[cursor:loc[0]])
		b.WriteString(decoded)
		cursor = end
	}

	if cursor == 0 {
		return s
	}

	b.WriteString(s[cursor:])
	return b.String()
}

// decodeBlock parses the arguments following the packer function body that starts at from.
// It returns the decoded payload and the offset just past the block.
func decodeBlock(s string, from int) (string, int, bool) {
	rel := bodyEnd.FindStringIndex(s[from:])
	if rel == nil {
		return "", 0, false
	}

	start := from + rel[0]
	m := args.FindStringSubmatchIndex(s[start:])
	if m == nil {
		return "", 0, false
	}

	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return s[start+m[2*i] : start+m[2*i+1]]
	}

	payload := group(1)
	if m[2] < 0 {
		payload = group(2)
	}
	keywords := group(5)
	if m[10] < 0 {
		keywords = group(6)
	}

	radix, err := strconv.Atoi(group(3))
	if err != nil || radix < 2 {
		return "", 0, false
	}
	count, err := strconv.Atoi(group(4))
	if err != nil || count < 0 || count > maxCount {
		return "", 0, false
	}

	return decode(unescape.Replace(payload), radix, count, strings.Split(keywords, "|")), start + m[1], true
}

func decode(payload string, radix, count int, keywords []string) string {
	dict := make(map[string]string, count)
	for i := count - 1; i >= 0; i-- {
		token := encode(i, radix)
		if i < len(keywords) && keywords[i] != "" {
			dict[token] = keywords[i]
		} else {
			dict[token] = token
		}
	}

	return word.ReplaceAllStringFunc(payload, func(w string) string {
		if v, ok := dict[w]; ok {
			return v
		}
		return w
	})
}

// encode writes c in base radix using the packer's alphabet:
// digits 0-35 as base36, higher digits as rune(d+29).
func encode(c, radix int) string {
	var prefix string
	if c >= radix {
		prefix = encode(c/radix, radix)
	}

	d := c % radix
	if d > 35 {
		return prefix + string(rune(d+29))
	}
	return prefix + strconv.FormatInt(int64(d), 36)
}
