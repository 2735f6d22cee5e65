package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures maps characters that NFD does not decompose.
var ligatures = strings.NewReplacer(
	"œ", "oe", "Œ", "oe",
	"æ", "ae", "Æ", "ae",
	"\u2019", "'", "\u2018", "'", "\u02bc", "'",
	"\u00a0", " ", "\u202f", " ",
	"\u2010", "-", "\u2011", "-",
)

// Fold lower-cases s, strips diacritics, unifies apostrophes and collapses
// whitespace runs to single spaces.
func Fold(s string) string {
	s = strings.ToLower(ligatures.Replace(s))
	// Chained transformers keep state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(folded), " ")
}

// CountTerm counts whole-word occurrences of a folded term in folded text.
// A match must not be glued to a letter or digit on either side.
func CountTerm(folded, term string) int {
	if term == "" {
		return 0
	}
	count := 0
	offset := 0
	for {
		i := strings.Index(folded[offset:], term)
		if i < 0 {
			return count
		}
		start := offset + i
		end := start + len(term)
		if Bounded(folded, start, end) {
			count++
			offset = end
		} else {
			offset = start + 1
		}
		if offset >= len(folded) {
			return count
		}
	}
}

// ContainsTerm reports whether a folded term occurs as a whole word.
func ContainsTerm(folded, term string) bool {
	return CountTerm(folded, term) > 0
}

// Bounded reports whether s[start:end] is neither preceded nor followed
// by a letter or digit.
func Bounded(s string, start, end int) bool {
	if start > 0 {
		r := lastRune(s[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(s) {
		r := firstRune(s[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
