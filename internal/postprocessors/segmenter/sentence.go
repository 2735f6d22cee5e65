package segmenter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

var (
	// acronymRe matches dotted acronyms such as "S.A.R.L." or "S.C.I.".
	acronymRe = regexp.MustCompile(`^(?:\p{L}\.){2,}$`)

	// numberingRe matches clause numbering tokens: "1.", "2.3.", "IV.", "1er.".
	numberingRe = regexp.MustCompile(`^(?:\d+(?:\.\d+)*|[IVXLC]+|[ivxlc]+|1er|premier)$`)
)

const (
	closers = `»"')]”`
	openers = `«"(“[`
)

// structuralWords precede numbering tokens that must not end a sentence.
var structuralWords = map[string]bool{
	"article": true, "art": true, "art.": true, "chapitre": true, "titre": true,
	"section": true, "clause": true, "annexe": true, "paragraphe": true, "lot": true,
}

// splitSentences splits a paragraph into sentences, each a slice of tokens.
// A paragraph end is always a sentence end.
func (s *Segmenter) splitSentences(paragraph string) [][]string {
	tokens := strings.Fields(paragraph)
	if len(tokens) == 0 {
		return nil
	}

	var (
		sentences [][]string
		start     int
	)
	for i := 0; i < len(tokens)-1; i++ {
		if !endsSentence(tokens[i]) || !startsSentence(tokens[i+1]) {
			continue
		}
		prev := ""
		if i > 0 {
			prev = tokens[i-1]
		}
		if s.keepsSentenceOpen(tokens[i], prev, i == 0) {
			continue
		}
		sentences = append(sentences, tokens[start:i+1])
		start = i + 1
	}
	return append(sentences, tokens[start:])
}

// keepsSentenceOpen reports whether a period-terminated token belongs to an
// abbreviation, an acronym, an initial or a clause number.
func (s *Segmenter) keepsSentenceOpen(token, prev string, paragraphStart bool) bool {
	core := strings.TrimRight(token, closers)
	if !strings.HasSuffix(core, ".") {
		return false
	}
	core = strings.TrimLeft(core, openers)
	if acronymRe.MatchString(core) {
		return true
	}
	bare := strings.TrimRight(core, ".")
	if bare == "" {
		return false
	}
	folded := lexicon.Fold(bare)
	if i := strings.LastIndexByte(folded, '\''); i >= 0 {
		// "l'art." elides the article.
		folded = folded[i+1:]
	}
	if s.lex.IsAbbreviation(folded) {
		return true
	}
	if utf8.RuneCountInString(bare) == 1 {
		r, _ := utf8.DecodeRuneInString(bare)
		if unicode.IsUpper(r) {
			return true
		}
	}
	if numberingRe.MatchString(bare) {
		if paragraphStart {
			return true
		}
		if structuralWords[lexicon.Fold(prev)] {
			return true
		}
	}
	return false
}

// endsSentence reports whether text ends with terminal punctuation,
// ignoring closing quotes and brackets.
func endsSentence(text string) bool {
	core := strings.TrimRight(text, closers)
	if core == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(core)
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// startsSentence reports whether a token can open a sentence.
func startsSentence(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	switch {
	case unicode.IsUpper(r), unicode.IsDigit(r):
		return true
	case strings.ContainsRune(openers, r):
		return true
	case r == '-' || r == '–' || r == '—' || r == '•':
		return true
	}
	return false
}
