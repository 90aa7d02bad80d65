package destination

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nearbyPattern = regexp.MustCompile(`(?i)cerca de mí|cercano|cercanos`)

// isNearby reports whether the query asks for sites around the user.
func isNearby(query string) bool {
	return nearbyPattern.MatchString(query)
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeDestination builds the cache key: lowercase, accents folded,
// punctuation treated as space.
func normalizeDestination(q string) string {
	folded, _, err := transform.String(foldAccents, q)
	if err != nil {
		folded = q
	}
	lowered := strings.ToLower(strings.TrimSpace(folded))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}
