// Package classifier detects the type of a French legal document from its
// vocabulary and returns the adaptive parameters used by the rest of the
// pipeline.
package classifier

import (
	"math"
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

// Verify interface compliance.
var _ driven.Classifier = (*Classifier)(nil)

// minNormWords is the floor used when normalising by length, so that very
// short texts are not boosted by one stray keyword.
const minNormWords = 50

// Classifier scores a text against every document type of a lexicon.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	lex *lexicon.Lexicon
}

// New creates a classifier over the given lexicon.
func New(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{lex: lex}
}

// Classify returns the best matching document type. It never fails:
// when no type reaches the lexicon's minimum score the generic type is used.
func (c *Classifier) Classify(text string) domain.Classification {
	folded := lexicon.Fold(text)
	words := len(strings.Fields(folded))
	norm := float64(max(words, minNormWords))

	scores := make(map[domain.DocumentType]float64, len(c.lex.Types))
	var (
		best      *lexicon.Profile
		bestScore float64
		total     float64
		matched   []string
	)
	for i := range c.lex.Types {
		p := &c.lex.Types[i]
		raw, hits := weigh(folded, p.Keywords)
		score := round3(raw * 100 / norm)
		scores[p.Type()] = score
		total += score
		if score > bestScore {
			best, bestScore, matched = p, score, hits
		}
	}

	confidence := 0.0
	if total > 0 {
		confidence = round3(bestScore / total)
	}

	if best == nil || bestScore < c.lex.MinScore {
		generic := domain.GeneralContract
		return domain.Classification{
			Type:       generic,
			Label:      c.lex.Label(generic),
			Confidence: confidence,
			Params:     c.lex.Params(generic),
			Scores:     scores,
			Matched:    []string{},
		}
	}

	return domain.Classification{
		Type:       best.Type(),
		Label:      best.Label,
		Confidence: confidence,
		Params:     c.lex.Params(best.Type()),
		Scores:     scores,
		Matched:    matched,
	}
}

// weigh sums weight x occurrences for every term found in folded text
// and returns the folded terms that matched.
func weigh(folded string, terms []lexicon.Term) (float64, []string) {
	var (
		raw  float64
		hits []string
	)
	for _, t := range terms {
		n := lexicon.CountTerm(folded, t.Folded())
		if n == 0 {
			continue
		}
		raw += t.Weight * float64(n)
		hits = append(hits, t.Folded())
	}
	if hits == nil {
		hits = []string{}
	}
	return raw, hits
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
