package sanitizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun = regexp.MustCompile(`[ \t\p{Zs}]+`)
	blankRun = regexp.MustCompile(`\n{3,}`)
)

// NFC converts s to Unicode normalization form C so visually equal strings
// compare equal.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(NFC(email)))
}

// SingleLine is for names, phone numbers and identifiers: control characters
// and line breaks are removed and whitespace runs collapse to one space.
func SingleLine(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, NFC(s))
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// MultiLine is for free text such as a bio: line breaks survive, other
// control characters are removed and long blank gaps are shortened.
func MultiLine(s string) string {
	s = strings.ReplaceAll(NFC(s), "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

// Trim removes surrounding whitespace. Used for URLs, which must not be
// otherwise altered.
func Trim(s string) string {
	return strings.TrimSpace(s)
}
