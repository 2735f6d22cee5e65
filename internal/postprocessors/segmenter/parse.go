package segmenter

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// articleHeaderRe matches structural headers: "Article 1", "Art. 2", "Chapitre II", "Annexe 3"...
	articleHeaderRe = regexp.MustCompile(`(?i)^(?:article|art\.|chapitre|titre|section|clause|annexe|paragraphe)\s*(?:premier|première|unique|\d+(?:er|re|ère)?(?:[.\-]\d+)*|(?-i:[IVXLC]+))\b`)

	// numberedHeaderRe matches numbered clauses: "1. Objet", "2) Prix", "3.1 Délais".
	numberedHeaderRe = regexp.MustCompile(`^(?:\d+(?:\.\d+)*[.)]|\d+\.\d+(?:\.\d+)*)\s+\S`)

	// columnGapRe matches the whitespace runs separating table columns.
	columnGapRe = regexp.MustCompile(` {2,}|\t+`)

	// leaderRe matches dot leaders used in price tables ("Gros œuvre ........ 12 000 €").
	leaderRe = regexp.MustCompile(`\.{4,}|…{2,}|_{4,}`)

	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u00a0", " ", "\u202f", " ")
)

// maxHeaderWords bounds the length of a line that can act as a bare heading.
const maxHeaderWords = 15

type blockKind int

const (
	blockProse blockKind = iota
	blockArticle
	blockTable
)

// block is a run of lines sharing one structural role.
// Empty strings in lines mark paragraph breaks.
type block struct {
	kind   blockKind
	header []string
	lines  []string
}

// parseBlocks groups lines into article, table and prose blocks.
func parseBlocks(text string) []*block {
	var (
		blocks []*block
		cur    *block
	)
	start := func(kind blockKind) *block {
		b := &block{kind: kind}
		blocks = append(blocks, b)
		return b
	}

	for _, raw := range strings.Split(lineEndings.Replace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if cur != nil && cur.kind == blockTable {
				cur = nil
			} else if cur != nil {
				cur.lines = append(cur.lines, "")
			}
			continue
		}

		switch {
		case isTableRow(raw):
			if cur == nil || cur.kind != blockTable {
				cur = start(blockTable)
			}
			cur.lines = append(cur.lines, line)
		case isArticleHeader(line):
			cur = start(blockArticle)
			cur.lines = append(cur.lines, line)
		case isCapsHeading(line):
			if cur != nil && cur.kind != blockTable && len(cur.lines) == 1 && isBareHeading(cur.lines[0]) {
				// "ARTICLE 3" followed by "PRIX DE VENTE": one heading.
				cur.lines = append(cur.lines, line)
				continue
			}
			cur = start(blockProse)
			cur.lines = append(cur.lines, line)
		default:
			if cur == nil || cur.kind == blockTable {
				cur = start(blockProse)
			}
			cur.lines = append(cur.lines, line)
		}
	}

	for _, b := range blocks {
		b.splitHeader()
	}
	return blocks
}

// splitHeader moves leading bare heading lines (short, no terminal
// punctuation) out of the body so they can be glued to the first sentence.
func (b *block) splitHeader() {
	if b.kind == blockTable {
		return
	}
	i := 0
	for i < len(b.lines) && b.lines[i] != "" && isBareHeading(b.lines[i]) {
		if i > 0 && !isCapsHeading(b.lines[i]) && !isArticleHeader(b.lines[i]) {
			break
		}
		i++
	}
	b.header = b.lines[:i]
	b.lines = b.lines[i:]
}

func isBareHeading(line string) bool {
	if len(strings.Fields(line)) > maxHeaderWords {
		return false
	}
	return !endsSentence(line)
}

func isArticleHeader(line string) bool {
	return articleHeaderRe.MatchString(line) || numberedHeaderRe.MatchString(line)
}

// isTableRow reports whether an untrimmed line looks like a table row.
func isTableRow(raw string) bool {
	line := strings.TrimSpace(raw)
	if strings.Count(line, "|") >= 2 {
		return true
	}
	if strings.Contains(line, "\t") {
		return true
	}
	if leaderRe.MatchString(line) {
		return true
	}
	return len(columnGapRe.FindAllString(line, -1)) >= 2
}

// isCapsHeading reports whether a line is a short all-caps heading.
func isCapsHeading(line string) bool {
	if len(strings.Fields(line)) > maxHeaderWords {
		return false
	}
	letters := 0
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 3
}
