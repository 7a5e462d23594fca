package metadata

import (
	"fmt"
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// toASCII strips accents by decomposing to NFKD and dropping combining
// marks, so "Fauré" matches "Faure".
func toASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	res, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return res
}

// MatchWord reports whether word occurs in text as a whole word,
// case-insensitively and ignoring accents. Word boundaries are spaces,
// underscores or the ends of the text, so "bach" matches "js_bach_fugue"
// but not "bachianas".
func MatchWord(text, word string) bool {
	pattern := fmt.Sprintf(`(?i)(^|[\s_])%v([\s_]|$)`, regexp.QuoteMeta(toASCII(word)))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(toASCII(text))
}
