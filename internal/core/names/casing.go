package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	allCapsPattern = regexp.MustCompile(`^[^a-z]+$`)
	twoCapsPattern = regexp.MustCompile(`[A-Z]{2}`)
)

// TitleCase applies standard title-casing to s.
func TitleCase(s string) string {
	// Casers carry state; build one per call.
	return cases.Title(language.English).String(s)
}

// Decapitalize title-cases strings with no lower case letters and otherwise
// scans character by character: a letter following a space or a lower case
// letter is upper-cased, every other letter is lower-cased. That turns
// "BRIAN McRAE" into "Brian McRae" instead of "Brian Mcrae".
func Decapitalize(s string) string {
	if allCapsPattern.MatchString(s) {
		return TitleCase(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	capitalize := true
	for _, r := range s {
		switch {
		case unicode.IsLower(r) || r == ' ':
			b.WriteRune(r)
			capitalize = true
		case capitalize:
			b.WriteRune(unicode.ToUpper(r))
			capitalize = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// FixCasing repairs the casing artifacts common in scraped text. Strings with
// no run of two capitals are left alone.
func FixCasing(s string) string {
	if !twoCapsPattern.MatchString(s) {
		return s
	}
	return Decapitalize(s)
}
