package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

var defaultBand = domain.Band{Min: 40, Target: 60, Max: 80}

func newTestScorer(t *testing.T, w Weights) *Scorer {
	t.Helper()
	lex, err := lexicon.Load()
	require.NoError(t, err)
	return NewScorer(lex, w)
}

func entitiesWith(cats ...domain.EntityCategory) domain.Entities {
	e := domain.NewEntities()
	for _, c := range cats {
		e.Add(c, string(c))
	}
	return e
}

func TestCompleteness(t *testing.T) {
	assert.Equal(t, 1.0, completeness(true, true))
	assert.Equal(t, 0.7, completeness(true, false))
	assert.Equal(t, 0.7, completeness(false, true))
	assert.Equal(t, 0.4, completeness(false, false))
}

func TestLengthAdequacy(t *testing.T) {
	t.Run("peaks at midpoint", func(t *testing.T) {
		assert.InDelta(t, 1.0, lengthAdequacy(60, defaultBand), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, lengthAdequacy(50, defaultBand), lengthAdequacy(70, defaultBand), 1e-9)
	})

	t.Run("band edges", func(t *testing.T) {
		// One sigma away from the midpoint.
		assert.InDelta(t, 0.6065, lengthAdequacy(40, defaultBand), 1e-3)
	})

	t.Run("far outside band", func(t *testing.T) {
		assert.Less(t, lengthAdequacy(10, defaultBand), 0.05)
	})

	t.Run("invalid band", func(t *testing.T) {
		assert.Zero(t, lengthAdequacy(60, domain.Band{}))
	})
}

func TestScorer_Coherence(t *testing.T) {
	s := newTestScorer(t, DefaultWeights)

	t.Run("no connector", func(t *testing.T) {
		f := lexicon.Fold("Le prix est payé par virement bancaire.")
		assert.Equal(t, 0.5, s.coherence(f, 7, domain.GeneralContract))
	})

	t.Run("generic connector", func(t *testing.T) {
		f := lexicon.Fold("Toutefois le prix est payé par virement bancaire.")
		assert.Equal(t, 1.0, s.coherence(f, 8, domain.GeneralContract))
	})

	t.Run("preferred connector counts more", func(t *testing.T) {
		text := lexicon.Fold("Le solde est versé au plus tard à la remise des clés.")
		generic := s.coherence(text, 40, domain.GeneralContract)
		preferred := s.coherence(text, 40, domain.ReservationContract)
		assert.Equal(t, 0.5, generic)
		assert.InDelta(t, 0.875, preferred, 1e-9)
	})
}

func TestScorer_Density(t *testing.T) {
	s := newTestScorer(t, DefaultWeights)

	t.Run("empty", func(t *testing.T) {
		assert.Zero(t, s.density("", 0, domain.NewEntities(), domain.GeneralContract))
	})

	t.Run("filler", func(t *testing.T) {
		f := lexicon.Fold("Le chat dort sur le canapé du salon.")
		assert.Zero(t, s.density(f, 8, domain.NewEntities(), domain.GeneralContract))
	})

	t.Run("keywords saturate", func(t *testing.T) {
		f := lexicon.Fold("Le prix de vente et le délai de livraison.")
		assert.Equal(t, 1.0, s.density(f, 9, domain.NewEntities(), domain.ReservationContract))
	})

	t.Run("entities count", func(t *testing.T) {
		f := lexicon.Fold("Le chat dort sur le canapé du salon.")
		got := s.density(f, 40, entitiesWith(domain.EntityDates), domain.GeneralContract)
		assert.InDelta(t, 2.0/6.0, got, 1e-9)
	})
}

func TestScorer_Score(t *testing.T) {
	s := newTestScorer(t, DefaultWeights)

	t.Run("short single chunk", func(t *testing.T) {
		score, f := s.Score(Input{
			Text:     "Le réservant vend au réservataire un logement neuf ici.",
			Entities: domain.NewEntities(),
			DocType:  domain.ReservationContract,
			Band:     domain.Band{Min: 45, Target: 65, Max: 85},
			First:    true,
			Last:     true,
		})
		assert.Equal(t, 1.0, f.Completeness)
		assert.Less(t, f.LengthAdequacy, 0.1)
		assert.Greater(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	})

	t.Run("entity richness", func(t *testing.T) {
		_, one := s.Score(Input{Text: "x", Entities: entitiesWith(domain.EntityDates), Band: defaultBand})
		_, three := s.Score(Input{Text: "x", Entities: entitiesWith(domain.EntityDates, domain.EntityAmounts, domain.EntityNorms), Band: defaultBand})
		assert.Equal(t, 0.333, one.EntityRichness)
		assert.Equal(t, 1.0, three.EntityRichness)
	})

	t.Run("mid chunk boundaries", func(t *testing.T) {
		_, f := s.Score(Input{Text: "a b c", Band: defaultBand, StartsAtBoundary: true})
		assert.Equal(t, 0.7, f.Completeness)
	})

	t.Run("nil entities", func(t *testing.T) {
		score, f := s.Score(Input{Text: "Un texte.", Band: defaultBand})
		assert.Zero(t, f.EntityRichness)
		assert.GreaterOrEqual(t, score, 0.0)
	})

	t.Run("rounded to three decimals", func(t *testing.T) {
		score, _ := s.Score(Input{Text: "Toutefois le prix est payé.", Entities: entitiesWith(domain.EntityAmounts), Band: defaultBand, First: true})
		assert.Equal(t, round3(score), score)
	})
}

func TestScorer_CustomWeights(t *testing.T) {
	t.Run("single factor", func(t *testing.T) {
		s := newTestScorer(t, Weights{Completeness: 2})
		score, _ := s.Score(Input{Text: "Un texte.", Band: defaultBand, First: true, Last: true})
		assert.Equal(t, 1.0, score)
	})

	t.Run("zero weights fall back to defaults", func(t *testing.T) {
		s := newTestScorer(t, Weights{})
		assert.Equal(t, DefaultWeights, s.weights)
	})

	t.Run("defaults sum to one", func(t *testing.T) {
		assert.InDelta(t, 1.0, DefaultWeights.sum(), 1e-9)
	})
}

func TestScorer_ContentType(t *testing.T) {
	s := newTestScorer(t, DefaultWeights)

	tests := []struct {
		name  string
		text  string
		table bool
		want  domain.ContentType
	}{
		{"table flag wins", "Le prix du lot", true, domain.ContentTable},
		{"financial", "Le prix et le paiement de l'acompte.", false, domain.ContentFinancial},
		{"tie goes to first category", "Le prix et le délai.", false, domain.ContentFinancial},
		{"timeline", "La livraison interviendra avant l'échéance du calendrier.", false, domain.ContentTimeline},
		{"guarantees", "Une garantie et une assurance dommages-ouvrage sont souscrites.", false, domain.ContentGuarantees},
		{"legal clause", "Article 3\nLes présentes sont régies par le droit français.", false, domain.ContentLegalClause},
		{"narrative", "Le chat dort sur le canapé du salon.", false, domain.ContentNarrative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ContentType(tt.text, tt.table))
		})
	}
}
