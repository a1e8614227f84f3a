package sync

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Turkish letters that survive NFD decomposition unchanged.
var turkishFold = strings.NewReplacer(
	"ı", "i",
	"ş", "s",
	"ğ", "g",
	"ç", "c",
	"ö", "o",
	"ü", "u",
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a category or brand name into the slug WooCommerce would
// assign it: lowercase ASCII with hyphens, Turkish characters folded.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = turkishFold.Replace(s)
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}

	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
