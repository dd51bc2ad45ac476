// Package slug turns human readable names into URL path segments.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// symbols become words of their own.
var symbols = map[rune]string{
	'&': "and",
	'%': "percent",
	'+': "plus",
	'@': "at",
}

// letters that survive diacritic folding but are not ASCII.
var letters = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'ø': "o",
	'đ': "d",
	'ł': "l",
}

// Make returns the lowercase, hyphen separated form of s with diacritics
// folded to ASCII. "Électronique & Co" becomes "electronique-and-co".
func Make(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		var word string
		symbol := false
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			word = string(r)
		case letters[r] != "":
			word = letters[r]
		case symbols[r] != "":
			word, symbol = symbols[r], true
			pendingDash = b.Len() > 0
		default:
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteString(word)
		pendingDash = symbol
	}
	return b.String()
}
