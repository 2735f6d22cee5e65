package segmenter

import (
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// piece is the smallest unit the builder moves around: a sentence, a table
// row, or a fragment of one after a forced split.
type piece struct {
	text  string
	words []string
	sep   string // joins the piece to the one before it
	start bool   // begins at a sentence or structural boundary
	end   bool   // ends at a sentence or structural boundary
	table bool
}

func newPiece(text, sep string, table bool) piece {
	return piece{
		text:  text,
		words: strings.Fields(text),
		sep:   sep,
		start: true,
		end:   true,
		table: table,
	}
}

func countWords(pieces []piece) int {
	n := 0
	for _, p := range pieces {
		n += len(p.words)
	}
	return n
}

// chunkBuf is the chunk under construction: carried-over overlap then new content.
type chunkBuf struct {
	overlap      []piece
	overlapWords int
	pieces       []piece
	newWords     int
}

func (c *chunkBuf) words() int {
	return c.overlapWords + c.newWords
}

// builder accumulates pieces into chunks bounded by a band.
//
// Every closed chunk except the last holds between band.Min and band.Max
// words, overlap included. Units are only broken when they cannot fit in
// an otherwise empty chunk, or when the chunk would stay below band.Min.
type builder struct {
	band    domain.Band
	overlap int
	cur     chunkBuf
	out     []Segment
}

// add appends a unit. A unit with several pieces is kept in one chunk
// whenever it fits.
func (b *builder) add(pieces []piece) {
	w := countWords(pieces)
	for w > 0 {
		if b.cur.words()+w <= b.band.Max {
			b.cur.pieces = append(b.cur.pieces, pieces...)
			b.cur.newWords += w
			return
		}

		if b.cur.newWords == 0 {
			if w <= b.band.Max {
				b.trimOverlap(b.band.Max - w)
				continue
			}
			if len(pieces) > 1 {
				b.addEach(pieces)
				return
			}
			pieces = b.fill(pieces[0])
			w = countWords(pieces)
			continue
		}

		if b.cur.words() < b.band.Min {
			if b.cur.overlapWords > 0 && b.cur.newWords+w <= b.band.Max {
				b.trimOverlap(b.band.Max - b.cur.newWords - w)
				continue
			}
			if len(pieces) > 1 {
				b.addEach(pieces)
				return
			}
			pieces = b.fill(pieces[0])
			w = countWords(pieces)
			continue
		}

		b.close()
	}
}

func (b *builder) addEach(pieces []piece) {
	for _, p := range pieces {
		b.add([]piece{p})
	}
}

// fill splits p so that its head tops the current chunk up to band.Max,
// closes the chunk and returns the tail.
func (b *builder) fill(p piece) []piece {
	room := b.band.Max - b.cur.words()
	if room <= 0 {
		b.trimOverlap(b.band.Max - b.cur.newWords - 1)
		room = b.band.Max - b.cur.words()
	}
	if room >= len(p.words) {
		b.cur.pieces = append(b.cur.pieces, p)
		b.cur.newWords += len(p.words)
		return nil
	}

	head := piece{
		text:  strings.Join(p.words[:room], " "),
		words: p.words[:room],
		sep:   p.sep,
		start: p.start,
		table: p.table,
	}
	tail := piece{
		text:  strings.Join(p.words[room:], " "),
		words: p.words[room:],
		sep:   " ",
		end:   p.end,
		table: p.table,
	}
	b.cur.pieces = append(b.cur.pieces, head)
	b.cur.newWords += room
	b.close()
	return []piece{tail}
}

// trimOverlap drops leading overlap words until at most keep remain.
func (b *builder) trimOverlap(keep int) {
	if b.cur.overlapWords <= keep {
		return
	}
	if keep <= 0 {
		b.cur.overlap = nil
		b.cur.overlapWords = 0
		return
	}
	var words []string
	for _, p := range b.cur.overlap {
		words = append(words, p.words...)
	}
	words = words[len(words)-keep:]
	last := b.cur.overlap[len(b.cur.overlap)-1]
	b.cur.overlap = []piece{{
		text:  strings.Join(words, " "),
		words: words,
		end:   last.end,
		table: last.table,
	}}
	b.cur.overlapWords = keep
}

// close emits the current chunk and seeds the next one with its overlap.
func (b *builder) close() {
	if b.cur.newWords == 0 {
		return
	}
	all := append(append([]piece(nil), b.cur.overlap...), b.cur.pieces...)
	b.out = append(b.out, b.segment(all))
	tail := b.tail(all)
	b.cur = chunkBuf{overlap: tail, overlapWords: countWords(tail)}
}

// finish emits the last chunk, if it holds any new content.
func (b *builder) finish() []Segment {
	if b.cur.newWords > 0 {
		all := append(append([]piece(nil), b.cur.overlap...), b.cur.pieces...)
		b.out = append(b.out, b.segment(all))
	}
	b.cur = chunkBuf{}
	return b.out
}

func (b *builder) segment(all []piece) Segment {
	var sb strings.Builder
	for i, p := range all {
		if i > 0 {
			sep := p.sep
			if sep == "" {
				sep = " "
			}
			sb.WriteString(sep)
		}
		sb.WriteString(p.text)
	}

	tableWords := 0
	for _, p := range b.cur.pieces {
		if p.table {
			tableWords += len(p.words)
		}
	}

	return Segment{
		Text:             sb.String(),
		WordCount:        b.cur.words(),
		OverlapWords:     b.cur.overlapWords,
		StartsAtBoundary: b.cur.pieces[0].start,
		EndsAtBoundary:   b.cur.pieces[len(b.cur.pieces)-1].end,
		Table:            tableWords*2 > b.cur.newWords,
	}
}

// tail picks the overlap carried into the next chunk: whole trailing
// pieces when their size is within half the requested overlap, otherwise
// the exact trailing words. It never covers the whole chunk.
func (b *builder) tail(all []piece) []piece {
	total := countWords(all)
	n := b.overlap
	if n <= 0 || total <= 1 {
		return nil
	}
	if total <= n {
		n = total / 2
	}
	if n >= b.band.Target {
		n = b.band.Target - 1
	}
	if n <= 0 {
		return nil
	}

	bestK, bestDiff := -1, 0
	sum := 0
	for k := len(all) - 1; k >= 0; k-- {
		sum += len(all[k].words)
		if sum >= total || sum >= b.band.Target {
			break
		}
		diff := abs(sum - n)
		if bestK < 0 || diff < bestDiff {
			bestK, bestDiff = k, diff
		}
		if sum > n {
			break
		}
	}
	if bestK >= 0 && bestDiff <= max(1, n/2) {
		out := make([]piece, len(all)-bestK)
		copy(out, all[bestK:])
		return out
	}

	words := make([]string, 0, total)
	for _, p := range all {
		words = append(words, p.words...)
	}
	words = words[len(words)-n:]
	return []piece{{
		text:  strings.Join(words, " "),
		words: words,
		end:   all[len(all)-1].end,
	}}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
