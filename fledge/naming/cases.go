package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Cases holds every case form derived from one raw name.
type Cases struct {
	Raw    string // Original input, untouched
	Pascal string // UserAuth
	Camel  string // userAuth
	Kebab  string // user-auth
	Snake  string // user_auth
	Lower  string // user auth
}

// ToCases splits input into words and derives all case forms.
//
// Empty or whitespace-only input has no words; every derived form is then the
// empty string and only Raw is set.
func ToCases(input string) Cases {
	words := Words(input)

	lower := make([]string, len(words))
	caser := cases.Lower(language.Und)
	for i, w := range words {
		lower[i] = caser.String(w)
	}

	var pascal strings.Builder
	for _, w := range lower {
		pascal.WriteString(upperFirst(w))
	}

	return Cases{
		Raw:    input,
		Pascal: pascal.String(),
		Camel:  lowerFirst(pascal.String()),
		Kebab:  strings.Join(lower, "-"),
		Snake:  strings.Join(lower, "_"),
		Lower:  strings.Join(lower, " "),
	}
}

// Words splits s into word tokens, keeping each token's original casing.
// Examples: "userAuth" → [user Auth], "user-auth" → [user auth],
// "api2Client" → [api2 Client]
func Words(s string) []string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	var prev rune
	for i, r := range s {
		if r == '-' || r == '_' {
			b.WriteByte(' ')
			prev = r
			continue
		}
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	return strings.Fields(b.String())
}

// Empty reports whether the name produced no words.
func (c Cases) Empty() bool {
	return c.Kebab == ""
}

// Pascal converts s to PascalCase.
func Pascal(s string) string { return ToCases(s).Pascal }

// Camel converts s to camelCase.
func Camel(s string) string { return ToCases(s).Camel }

// Kebab converts s to kebab-case.
func Kebab(s string) string { return ToCases(s).Kebab }

// Snake converts s to snake_case.
func Snake(s string) string { return ToCases(s).Snake }

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
