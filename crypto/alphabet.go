// Package crypto contains the Autokey cipher engines and the known-plaintext key recovery
package crypto

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const alphabetSize = 26

// CharToNum maps 'A'..'Z' to 0..25
func CharToNum(c byte) int {
	return int(c) - 'A'
}

// NumToChar maps 0..25 back to 'A'..'Z'. Values outside that range are not checked.
func NumToChar(n int) byte {
	return byte(n + 'A')
}

// IsLetter reports whether r is one of the 26 uppercase latin letters
func IsLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Normalize turns carriage returns into newlines, collapses every whitespace
// run into a single space and trims both ends.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Join(strings.Fields(s), " ")
}

// LettersOnlyUpper upper-cases s and drops everything that is not A-Z
func LettersOnlyUpper(s string) string {
	upper := toUpper(s)

	var sb strings.Builder
	sb.Grow(len(upper))
	for _, r := range upper {
		if IsLetter(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// toUpper applies full Unicode case mapping, so "ß" becomes "SS" rather than staying put.
func toUpper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
