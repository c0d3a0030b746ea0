package services

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// truncateRunes keeps at most n characters of s. Input is NFC-normalized
// first so a decomposed accent does not count as an extra character.
func truncateRunes(s string, n int) string {
	s = norm.NFC.String(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// upper renders section names the way they are printed as headings. A Caser
// keeps state, so one is built per call.
func upper(s string) string {
	return cases.Upper(language.Spanish).String(norm.NFC.String(s))
}

func runeLen(s string) int { return utf8.RuneCountInString(norm.NFC.String(s)) }
