package section

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey folds a section display name into its routing key: NFKD
// decomposition, combining marks dropped, lower-cased, with every run of
// non-alphanumeric characters collapsed to a single underscore
// ("Pokémon Moves" -> "pokemon_moves"). Normalizing is idempotent.
func NormalizeKey(name string) string {
	decomposed := norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingSep := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			// Combining mark left over from decomposition.
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	return b.String()
}
