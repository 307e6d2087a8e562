package names

import (
	"regexp"
	"strings"
)

// Parsed is the raw result of splitting a display string. Title is kept
// separate so callers can refuse it.
type Parsed struct {
	Title string
	Name  Name
}

// titles is the honorific vocabulary. Reverend, Bishop, Pope, Merchant and
// St. are absent: in this data they are given names or surname
// parts, not honorifics.
var titles = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true, "dr": true,
	"hon": true, "honorable": true, "sen": true, "senator": true,
	"rep": true, "representative": true, "speaker": true, "judge": true,
	"gov": true, "governor": true, "lt": true, "sgt": true, "capt": true,
	"col": true, "gen": true, "maj": true, "prof": true, "sir": true,
	"dame": true, "lady": true, "lord": true,
}

var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
	"esq": true, "md": true, "phd": true,
}

// prefixes join with whatever follows them into the last name.
var prefixes = map[string]bool{
	"van": true, "von": true, "de": true, "del": true, "della": true,
	"der": true, "di": true, "da": true, "la": true, "le": true,
	"du": true, "st.": true, "ten": true, "ter": true,
}

var (
	nicknamePattern = regexp.MustCompile(`\s*(\([^)]*\)|"[^"]*"|“[^”]*”)\s*`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

func tokenKey(tok string) string {
	return strings.ToLower(strings.Trim(tok, ".,"))
}

func isTitle(tok string) bool  { return titles[tokenKey(tok)] }
func isSuffix(tok string) bool { return suffixes[tokenKey(tok)] }

// Parse splits a display string into name parts. It understands
// "First Middle Last Suffix", "Last, First Middle" and "First Last, Suffix".
// A single bare token is taken as the last name. Quoted or parenthesized
// nicknames are dropped.
func Parse(s string) Parsed {
	s = nicknamePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
	if s == "" {
		return Parsed{}
	}

	if strings.Contains(s, ",") {
		return parseComma(s)
	}
	return parseTokens(strings.Fields(s))
}

func parseComma(s string) Parsed {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// "First Last, Jr." - everything after the first comma is a suffix.
	rest := strings.Fields(strings.Join(parts[1:], " "))
	if len(rest) > 0 && allSuffixes(rest) {
		p := parseTokens(strings.Fields(parts[0]))
		p.Name.Suffix = joinSuffix(p.Name.Suffix, strings.Join(rest, " "))
		return p
	}

	// "Last, First Middle[, Suffix]"
	var p Parsed
	lastTokens := strings.Fields(parts[0])
	givenTokens := strings.Fields(parts[1])
	var suffixTokens []string
	for _, extra := range parts[2:] {
		suffixTokens = append(suffixTokens, strings.Fields(extra)...)
	}

	for len(givenTokens) > 0 && isTitle(givenTokens[0]) {
		p.Title = joinSuffix(p.Title, givenTokens[0])
		givenTokens = givenTokens[1:]
	}
	for len(givenTokens) > 1 && isSuffix(givenTokens[len(givenTokens)-1]) {
		suffixTokens = append([]string{givenTokens[len(givenTokens)-1]}, suffixTokens...)
		givenTokens = givenTokens[:len(givenTokens)-1]
	}

	p.Name.Last = strings.Join(lastTokens, " ")
	if len(givenTokens) > 0 {
		p.Name.First = givenTokens[0]
		p.Name.Middle = strings.Join(givenTokens[1:], " ")
	}
	p.Name.Suffix = strings.Join(suffixTokens, " ")
	return p
}

func parseTokens(tokens []string) Parsed {
	var p Parsed

	for len(tokens) > 1 && isTitle(tokens[0]) {
		p.Title = joinSuffix(p.Title, tokens[0])
		tokens = tokens[1:]
	}

	var suffixTokens []string
	for len(tokens) > 2 && isSuffix(tokens[len(tokens)-1]) {
		suffixTokens = append([]string{tokens[len(tokens)-1]}, suffixTokens...)
		tokens = tokens[:len(tokens)-1]
	}
	// "Smith Jr"
	if len(tokens) == 2 && isSuffix(tokens[1]) {
		suffixTokens = append([]string{tokens[1]}, suffixTokens...)
		tokens = tokens[:1]
	}
	p.Name.Suffix = strings.Join(suffixTokens, " ")

	switch len(tokens) {
	case 0:
		return p
	case 1:
		p.Name.Last = tokens[0]
		return p
	}

	// "De Luca", "Van Der Berg": a leading prefix with nothing but prefixes
	// before the final token leaves no given name.
	if allPrefixes(tokens[:len(tokens)-1]) {
		p.Name.Last = strings.Join(tokens, " ")
		return p
	}

	lastStart := len(tokens) - 1
	for i := 1; i < len(tokens)-1; i++ {
		if prefixes[strings.ToLower(tokens[i])] {
			lastStart = i
			break
		}
	}

	p.Name.First = tokens[0]
	p.Name.Middle = strings.Join(tokens[1:lastStart], " ")
	p.Name.Last = strings.Join(tokens[lastStart:], " ")
	return p
}

func allPrefixes(tokens []string) bool {
	for _, tok := range tokens {
		if !prefixes[strings.ToLower(tok)] {
			return false
		}
	}
	return true
}

func allSuffixes(tokens []string) bool {
	for _, tok := range tokens {
		if !isSuffix(tok) {
			return false
		}
	}
	return true
}

func joinSuffix(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}

// Normalize turns a raw display string into a Name: casing artifacts are
// repaired and the result is parsed. A surviving title is fatal and returned
// as *UnexpectedTitleError.
func Normalize(raw string) (Name, error) {
	fixed := FixCasing(strings.TrimSpace(raw))
	p := Parse(fixed)
	if p.Title != "" {
		return Name{}, &UnexpectedTitleError{Raw: raw, Title: p.Title, Parsed: p.Name}
	}
	return p.Name, nil
}
