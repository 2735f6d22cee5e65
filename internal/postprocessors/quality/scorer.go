// Package quality scores chunks on five factors and tags their dominant
// content type. Scores are informational: no chunk is ever dropped.
package quality

import (
	"math"
	"regexp"
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

// Weights combines the five factors. They are normalised to sum to 1.
type Weights struct {
	Completeness   float64
	Coherence      float64
	Density        float64
	LengthAdequacy float64
	EntityRichness float64
}

// DefaultWeights are the factor weights used unless configured otherwise.
var DefaultWeights = Weights{
	Completeness:   0.25,
	Coherence:      0.15,
	Density:        0.25,
	LengthAdequacy: 0.20,
	EntityRichness: 0.15,
}

func (w Weights) sum() float64 {
	return w.Completeness + w.Coherence + w.Density + w.LengthAdequacy + w.EntityRichness
}

// normalized scales the weights to sum to 1. All-zero weights give the defaults.
func (w Weights) normalized() Weights {
	s := w.sum()
	if s <= 0 {
		return DefaultWeights
	}
	return Weights{
		Completeness:   w.Completeness / s,
		Coherence:      w.Coherence / s,
		Density:        w.Density / s,
		LengthAdequacy: w.LengthAdequacy / s,
		EntityRichness: w.EntityRichness / s,
	}
}

const (
	// preferredBoost is how much more a type-preferred connector counts.
	preferredBoost = 1.5

	// connectorSpan is the number of words per expected connector.
	connectorSpan = 20.0

	// entityWeight is the density contribution of one entity value.
	entityWeight = 2.0

	// densityRatio is the keyword weight per word that saturates density.
	densityRatio = 0.15

	// richCategories is the number of entity categories that saturates richness.
	richCategories = 3.0
)

// articleLineRe spots an article header at the start of a line.
var articleLineRe = regexp.MustCompile(`(?im)^\s*(?:article|art\.)\s+(?:\d+|(?-i:[IVXLC]+)\b|premier\b|1er\b)`)

// Input is what the scorer needs to know about one chunk.
type Input struct {
	Text      string
	WordCount int
	Entities  domain.Entities

	DocType domain.DocumentType
	Band    domain.Band

	StartsAtBoundary bool
	EndsAtBoundary   bool
	First            bool
	Last             bool
}

// Scorer computes chunk quality from the lexicon's vocabulary.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	lex     *lexicon.Lexicon
	weights Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(lex *lexicon.Lexicon, weights Weights) *Scorer {
	return &Scorer{lex: lex, weights: weights.normalized()}
}

// Score returns the overall score, rounded to three decimals and clamped
// to [0, 1], with its factor breakdown.
func (s *Scorer) Score(in Input) (float64, domain.QualityFactors) {
	folded := lexicon.Fold(in.Text)
	words := in.WordCount
	if words == 0 {
		words = len(strings.Fields(in.Text))
	}

	f := domain.QualityFactors{
		Completeness:   completeness(in.First || in.StartsAtBoundary, in.Last || in.EndsAtBoundary),
		Coherence:      s.coherence(folded, words, in.DocType),
		Density:        s.density(folded, words, in.Entities, in.DocType),
		LengthAdequacy: lengthAdequacy(words, in.Band),
		EntityRichness: math.Min(1, float64(in.Entities.DistinctCategories())/richCategories),
	}

	w := s.weights
	score := w.Completeness*f.Completeness +
		w.Coherence*f.Coherence +
		w.Density*f.Density +
		w.LengthAdequacy*f.LengthAdequacy +
		w.EntityRichness*f.EntityRichness

	return clamp(round3(score)), roundFactors(f)
}

// completeness is 1 when both ends fall on boundaries, 0.7 for one, 0.4 for none.
func completeness(starts, ends bool) float64 {
	switch {
	case starts && ends:
		return 1.0
	case starts || ends:
		return 0.7
	default:
		return 0.4
	}
}

// coherence rewards transition phrases: one per connectorSpan words saturates it.
func (s *Scorer) coherence(folded string, words int, t domain.DocumentType) float64 {
	hits := 0.0
	for _, c := range s.lex.GenericConnectors() {
		hits += float64(lexicon.CountTerm(folded, c))
	}
	for _, c := range s.lex.PreferredConnectors(t) {
		hits += preferredBoost * float64(lexicon.CountTerm(folded, c))
	}
	expected := math.Max(1, float64(words)/connectorSpan)
	return math.Min(1, 0.5+0.5*hits/expected)
}

// density rewards domain vocabulary and entities relative to length.
func (s *Scorer) density(folded string, words int, entities domain.Entities, t domain.DocumentType) float64 {
	if words == 0 {
		return 0
	}
	weight := 0.0
	for _, kw := range s.lex.DomainKeywords {
		weight += kw.Weight * float64(lexicon.CountTerm(folded, kw.Folded()))
	}
	for _, kw := range s.lex.Profile(t).Keywords {
		weight += kw.Weight * float64(lexicon.CountTerm(folded, kw.Folded()))
	}
	weight += entityWeight * float64(entities.Count())
	return math.Min(1, weight/(densityRatio*float64(words)))
}

// lengthAdequacy is a Gaussian centred on the band midpoint with a
// standard deviation of half the band width.
func lengthAdequacy(words int, band domain.Band) float64 {
	if !band.Valid() {
		return 0
	}
	sigma := float64(band.Max-band.Min) / 2
	if sigma <= 0 {
		sigma = 1
	}
	d := float64(words) - band.Midpoint()
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// ContentType tags the dominant content of a chunk: tables first, then
// the keyword category with the most hits (earliest on ties), then clauses
// opening with an article header, else narrative.
func (s *Scorer) ContentType(text string, table bool) domain.ContentType {
	if table {
		return domain.ContentTable
	}
	folded := lexicon.Fold(text)
	best, bestCount := "", 0
	for _, c := range s.lex.ContentCategories {
		n := 0
		for _, kw := range c.FoldedKeywords() {
			n += lexicon.CountTerm(folded, kw)
		}
		if n > bestCount {
			best, bestCount = c.Name, n
		}
	}
	if bestCount > 0 {
		return domain.ContentType(best)
	}
	if articleLineRe.MatchString(text) {
		return domain.ContentLegalClause
	}
	return domain.ContentNarrative
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func roundFactors(f domain.QualityFactors) domain.QualityFactors {
	return domain.QualityFactors{
		Completeness:   round3(f.Completeness),
		Coherence:      round3(f.Coherence),
		Density:        round3(f.Density),
		LengthAdequacy: round3(f.LengthAdequacy),
		EntityRichness: round3(f.EntityRichness),
	}
}
