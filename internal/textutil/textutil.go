package textutil

import (
	"regexp"
	"strings"
)

// pokemonDisplayCases maps lower-cased names to display forms that plain
// title-casing gets wrong.
var pokemonDisplayCases = map[string]string{
	"mr mime":   "Mr. Mime",
	"mime jr":   "Mime Jr.",
	"farfetchd": "Farfetchˈd",
	"nidoran m": "Nidoran♂",
	"nidoran f": "Nidoran♀",
	"ho oh":     "Ho-Oh",
}

// itemDisplayCases maps title-cased words to their abbreviated display forms.
var itemDisplayCases = map[string]string{
	"Pp":    "PP",
	"Tm":    "TM",
	"Hm":    "HM",
	"Hp":    "HP",
	"Gs":    "GS",
	"Ss":    "S.S.",
	"Exp":   "Exp.",
	"Kings": "King's",
}

var (
	nonIDChars     = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRuns      = regexp.MustCompile(`\s+`)
	romanNumeral   = regexp.MustCompile(`(?i)\b[MDCLXVI]+\b`)
	canonicalRoman = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)
	unsafeFile     = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
)

// NameToID converts a display name to its kebab-case record ID
// (e.g. "Thunder Stone" -> "thunder-stone", "Pokémon" -> "pokemon").
func NameToID(name string) string {
	id := strings.ReplaceAll(name, "é", "e")
	id = strings.ReplaceAll(id, "É", "E")
	id = nonIDChars.ReplaceAllString(strings.ToLower(id), "")
	id = spaceRuns.ReplaceAllString(strings.TrimSpace(id), "-")
	return strings.Trim(id, "-")
}

// DisplayName formats a record ID for display: separators become spaces,
// words are title-cased, and known special cases and abbreviations are applied.
func DisplayName(name string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(name)

	if special, ok := pokemonDisplayCases[strings.ToLower(s)]; ok {
		return special
	}

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	for i, w := range words {
		if repl, ok := itemDisplayCases[w]; ok {
			words[i] = repl
		}
	}
	out := strings.Join(words, " ")

	// Upper-case Roman numerals (Route Ix -> Route IX).
	out = romanNumeral.ReplaceAllStringFunc(out, func(m string) string {
		upper := strings.ToUpper(m)
		if isRoman(upper) {
			return upper
		}
		return m
	})
	return out
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// isRoman reports whether s is a canonical Roman numeral. Single letters
// other than I, V and X are left alone so initials don't get mangled.
func isRoman(s string) bool {
	if len(s) == 1 {
		return s == "I" || s == "V" || s == "X"
	}
	return canonicalRoman.MatchString(s)
}

// SanitizeFilename replaces characters that are unsafe in file names
// with underscores.
func SanitizeFilename(name string) string {
	s := unsafeFile.ReplaceAllString(name, "_")
	return strings.Trim(s, "_")
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
