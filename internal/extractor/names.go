package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

// particles may appear inside a name but never start or end one.
var particles = map[string]bool{
	"de": true, "du": true, "des": true, "la": true, "le": true, "les": true,
	"et": true, "d'": true, "l'": true, "&": true, "sur": true, "sous": true,
	"en": true, "-": true,
}

// honorifics open a person's name.
var honorifics = map[string]bool{
	"m.": true, "mm.": true, "mme": true, "mmes": true, "mlle": true,
	"monsieur": true, "madame": true, "messieurs": true, "me": true, "maitre": true,
}

// leadIns are skipped before a party name ("la société SCCV ...").
var leadIns = map[string]bool{
	"la": true, "le": true, "l'": true, "les": true, "societe": true, "ste": true,
}

const (
	maxNameTokens = 10
	maxNameRunes  = 80
)

// nameMode selects which tokens a name may contain.
type nameMode int

const (
	// partyName accepts capitalised words, honorifics and particles.
	partyName nameMode = iota
	// capsName accepts upper-case words and particles only.
	capsName
	// placeName accepts capitalised and hyphenated words and particles.
	placeName
)

// scanName reads a proper name at the start of s. Leading spaces, a
// colon or a comma are skipped; the name ends at the first word that
// cannot belong to it, at trailing punctuation or at the end of its line.
func scanName(s string, mode nameMode) string {
	s = strings.TrimLeft(s, " \t\u00a0")
	s = strings.TrimPrefix(s, "(s)")
	s = strings.TrimPrefix(s, "(e)")
	s = strings.TrimLeft(s, " \t\u00a0,:")
	s = strings.TrimLeft(s, " \t\u00a0")
	if strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\r\n") {
		s = strings.TrimLeft(s, "\r\n \t")
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	var tokens []string
	for _, raw := range strings.Fields(s) {
		if len(tokens) >= maxNameTokens {
			break
		}
		word := strings.TrimRight(raw, ",;:.)»\"")
		trailing := len(word) < len(raw)
		folded := lexicon.Fold(word)

		switch {
		case word == "":
			return finishName(tokens)
		case mode == partyName && len(tokens) == 0 && leadIns[folded]:
			continue
		case mode == partyName && honorifics[lexicon.Fold(strings.TrimRight(raw, ",;:"))]:
			tokens = append(tokens, strings.TrimRight(raw, ",;:"))
			continue
		case particles[folded] || isElidedParticle(word):
			if len(tokens) == 0 && (mode != capsName || !isCapsWord(word)) {
				return ""
			}
			tokens = append(tokens, word)
		case acceptsWord(word, mode):
			tokens = append(tokens, word)
		default:
			return finishName(tokens)
		}
		if trailing {
			break
		}
	}
	return finishName(tokens)
}

func acceptsWord(word string, mode nameMode) bool {
	switch mode {
	case capsName:
		return isCapsWord(word)
	default:
		return isCapsWord(word) || isTitleWord(word)
	}
}

// isElidedParticle matches "d'Europe" style tokens inside place names.
func isElidedParticle(word string) bool {
	f := lexicon.Fold(word)
	if !strings.HasPrefix(f, "d'") && !strings.HasPrefix(f, "l'") {
		return false
	}
	_, size := utf8.DecodeRuneInString(word)
	rest := strings.TrimLeft(word[size:], "'’")
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(r)
}

// finishName drops trailing particles and rejects names without a real word.
func finishName(tokens []string) string {
	for len(tokens) > 0 && particles[lexicon.Fold(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}
	hasWord := false
	for _, t := range tokens {
		f := lexicon.Fold(t)
		if !particles[f] && !honorifics[f] && utf8.RuneCountInString(t) >= 2 {
			hasWord = true
			break
		}
	}
	if !hasWord {
		return ""
	}
	name := strings.Join(tokens, " ")
	if utf8.RuneCountInString(name) > maxNameRunes {
		return ""
	}
	return name
}

// isCapsWord reports whether every letter of word is upper case.
// Digits and joiners are allowed but at least one letter is required.
func isCapsWord(word string) bool {
	letters := 0
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		case unicode.IsDigit(r), r == '-', r == '\'', r == '’', r == '&', r == '.':
		default:
			return false
		}
	}
	return letters > 0
}

// isTitleWord reports whether word starts with an upper-case letter.
func isTitleWord(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

// phrasePattern builds an accent- and case-insensitive pattern for a
// lexicon phrase. Spaces match any whitespace run.
func phrasePattern(phrase string) string {
	folded := []rune(lexicon.Fold(phrase))
	var sb strings.Builder
	for i := 0; i < len(folded); i++ {
		r := folded[i]
		if r == 'o' && i+1 < len(folded) && folded[i+1] == 'e' {
			sb.WriteString(`(?:oe|œ)`)
			i++
			continue
		}
		switch r {
		case 'a':
			sb.WriteString(`[aàâä]`)
		case 'e':
			sb.WriteString(`[eéèêë]`)
		case 'i':
			sb.WriteString(`[iîï]`)
		case 'o':
			sb.WriteString(`[oôö]`)
		case 'u':
			sb.WriteString(`[uùûü]`)
		case 'c':
			sb.WriteString(`[cç]`)
		case ' ':
			sb.WriteString(`\s+`)
		case '\'':
			sb.WriteString(`['’]`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return sb.String()
}

// findBounded returns the spans of re in text that stand as whole words.
func findBounded(re *regexp.Regexp, text string) [][]int {
	var out [][]int
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if lexicon.Bounded(text, loc[0], loc[1]) {
			out = append(out, loc)
		}
	}
	return out
}

// stripArticle removes a leading French article from a folded phrase.
func stripArticle(folded string) string {
	for _, art := range []string{"le ", "la ", "les ", "l'"} {
		if strings.HasPrefix(folded, art) {
			return strings.TrimSpace(folded[len(art):])
		}
	}
	return folded
}
