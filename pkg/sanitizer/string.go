package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower converts s to lowercase.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// ToUpper converts s to uppercase using Brazilian Portuguese casing rules.
func ToUpper(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(s)
}

// SingleLine replaces runs of whitespace, including line breaks, with one space.
func SingleLine(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// KeepDigits drops every character that is not an ASCII digit.
func KeepDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// RemoveAccents replaces accented Latin letters with their unaccented base
// letter. Input is composed to NFC first so decomposed sequences such as
// "é" are handled like their precomposed form.
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFC, runes.Map(stripLatinMarks))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// stripLatinMarks maps a precomposed Latin letter to its base letter when the
// canonical decomposition is that letter followed only by nonspacing marks.
func stripLatinMarks(r rune) rune {
	if r < utf8.RuneSelf || !unicode.Is(unicode.Latin, r) {
		return r
	}

	d := norm.NFD.String(string(r))
	base, size := utf8.DecodeRuneInString(d)
	if size == len(d) {
		return r
	}
	for _, m := range d[size:] {
		if !unicode.Is(unicode.Mn, m) {
			return r
		}
	}
	return base
}
