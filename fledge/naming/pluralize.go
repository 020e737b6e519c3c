package naming

import (
	"strings"
	"unicode"
)

var irregularPlurals = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"tooth":  "teeth",
	"foot":   "feet",
	"mouse":  "mice",
	"goose":  "geese",
}

// Pluralize converts a singular noun to its plural form using common English
// rules. Only the last word is changed, so "user profile" → "user profiles"
// and "UserProfile" → "UserProfiles".
func Pluralize(word string) string {
	if word == "" {
		return ""
	}

	lower := strings.ToLower(word)

	for singular, plural := range irregularPlurals {
		if !strings.HasSuffix(lower, singular) {
			continue
		}
		// Only whole trailing words: "human" must not match "man".
		prefix := word[:len(word)-len(singular)]
		if prefix != "" && !atWordBoundary(prefix, word[len(prefix):]) {
			continue
		}
		return prefix + preserveCase(word[len(prefix):], plural)
	}

	switch {
	case strings.HasSuffix(lower, "s"),
		strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return word + "es"

	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return word[:len(word)-1] + "ies"

	case strings.HasSuffix(lower, "o") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		for _, exc := range []string{"photo", "piano", "halo"} {
			if strings.HasSuffix(lower, exc) {
				return word + "s"
			}
		}
		return word + "es"

	case strings.HasSuffix(lower, "fe"):
		return word[:len(word)-2] + "ves"

	case strings.HasSuffix(lower, "f"):
		return word[:len(word)-1] + "ves"
	}

	return word + "s"
}

// atWordBoundary reports whether tail starts a new word after prefix.
func atWordBoundary(prefix, tail string) bool {
	last := rune(prefix[len(prefix)-1])
	if last == ' ' || last == '-' || last == '_' {
		return true
	}
	return tail != "" && unicode.IsUpper(rune(tail[0]))
}

// preserveCase applies the case pattern of original to plural.
func preserveCase(original, plural string) string {
	if strings.ToUpper(original) == original {
		return strings.ToUpper(plural)
	}
	if unicode.IsUpper(rune(original[0])) {
		return strings.ToUpper(plural[:1]) + plural[1:]
	}
	return plural
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
