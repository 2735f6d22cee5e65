// Package segmenter splits legal text into sentence-respecting,
// structure-aware chunks sized by an adaptive word band, with trailing
// context carried from one chunk into the next.
package segmenter

import (
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

// Segment is one raw chunk produced by the segmenter.
type Segment struct {
	// Text is the chunk text, overlap included.
	Text string

	// WordCount is the number of whitespace-separated words in Text.
	WordCount int

	// OverlapWords is how many leading words repeat the end of the previous segment.
	OverlapWords int

	// StartsAtBoundary is true when the new content begins a sentence or unit.
	StartsAtBoundary bool

	// EndsAtBoundary is true when the segment ends on a sentence or unit boundary.
	EndsAtBoundary bool

	// Table is true when most of the new content comes from table rows.
	Table bool
}

// Segmenter splits text into segments. It holds no mutable state.
type Segmenter struct {
	lex *lexicon.Lexicon
}

// NewSegmenter creates a segmenter that uses the lexicon's abbreviations.
func NewSegmenter(lex *lexicon.Lexicon) *Segmenter {
	return &Segmenter{lex: lex}
}

// Split cuts text into segments whose word counts stay within band, except
// the last one which may be shorter. Consecutive segments share about
// overlap words. Text that fits in band.Max words yields a single segment.
func (s *Segmenter) Split(text string, band domain.Band, overlap int) []Segment {
	if !band.Valid() {
		band = domain.BandAround(max(band.Target, 1))
	}
	if overlap < 0 {
		overlap = 0
	}

	b := &builder{band: band, overlap: overlap}
	for _, blk := range parseBlocks(text) {
		for _, unit := range s.units(blk) {
			b.add(unit)
		}
	}
	return b.finish()
}

// units converts a block into the units handed to the builder. Articles
// and tables are one unit each; prose yields one unit per sentence.
func (s *Segmenter) units(blk *block) [][]piece {
	if blk.kind == blockTable {
		rows := make([]piece, 0, len(blk.lines))
		for _, line := range blk.lines {
			rows = append(rows, newPiece(line, "\n", true))
		}
		return [][]piece{rows}
	}

	pieces := s.sentencePieces(blk)
	if blk.kind == blockArticle {
		return [][]piece{pieces}
	}
	units := make([][]piece, 0, len(pieces))
	for _, p := range pieces {
		units = append(units, []piece{p})
	}
	return units
}

// sentencePieces splits the paragraphs of a block into sentence pieces and
// glues any bare heading to the first sentence.
func (s *Segmenter) sentencePieces(blk *block) []piece {
	var pieces []piece
	for _, para := range paragraphs(blk.lines) {
		for i, sentence := range s.splitSentences(para) {
			sep := " "
			if i == 0 {
				sep = "\n"
			}
			pieces = append(pieces, newPiece(strings.Join(sentence, " "), sep, false))
		}
	}

	if len(blk.header) == 0 {
		return pieces
	}
	header := strings.Join(blk.header, "\n")
	if len(pieces) == 0 {
		return []piece{newPiece(header, "\n", false)}
	}
	pieces[0] = newPiece(header+"\n"+pieces[0].text, "\n", false)
	return pieces
}

// paragraphs joins consecutive non-empty lines; empty lines separate paragraphs.
func paragraphs(lines []string) []string {
	var (
		out []string
		cur []string
	)
	for _, l := range lines {
		if l == "" {
			if len(cur) > 0 {
				out = append(out, strings.Join(cur, " "))
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}
