package extractor

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	lex, err := lexicon.Load()
	require.NoError(t, err)
	return New(lex)
}

func normalizedOf(matches []domain.EntityMatch, cat domain.EntityCategory) []string {
	var out []string
	for _, m := range matches {
		if m.Category == cat {
			out = append(out, m.Normalized)
		}
	}
	return out
}

func TestPatternCount(t *testing.T) {
	assert.GreaterOrEqual(t, PatternCount(), 20)
}

func TestChunkEntities_EveryCategoryPresent(t *testing.T) {
	e := newTestExtractor(t)

	entities, matches := e.ChunkEntities("")

	assert.Len(t, entities, len(domain.EntityCategories))
	for _, cat := range domain.EntityCategories {
		values, ok := entities[cat]
		assert.True(t, ok, "category %s missing", cat)
		assert.NotNil(t, values)
		assert.Empty(t, values)
	}
	assert.Empty(t, matches)
}

func TestChunkEntities_Dates(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name       string
		text       string
		values     []string
		normalized []string
	}{
		{
			name:       "numeric",
			text:       "Signé le 15/09/2012 à Paris.",
			values:     []string{"15/09/2012"},
			normalized: []string{"15/09/2012"},
		},
		{
			name:       "numeric with dashes and short year",
			text:       "Remis le 3-4-15.",
			values:     []string{"3-4-15"},
			normalized: []string{"03/04/2015"},
		},
		{
			name:       "iso",
			text:       "Date d'effet : 2012-09-15.",
			values:     []string{"2012-09-15"},
			normalized: []string{"15/09/2012"},
		},
		{
			name:       "spelled",
			text:       "Fait le 15 septembre 2012.",
			values:     []string{"15 septembre 2012"},
			normalized: []string{"15/09/2012"},
		},
		{
			name:       "ordinal without month year duplicate",
			text:       "Livraison prévue le 1er mars 2013.",
			values:     []string{"1er mars 2013"},
			normalized: []string{"01/03/2013"},
		},
		{
			name:       "month year",
			text:       "Achèvement prévu en septembre 2014.",
			values:     []string{"septembre 2014"},
			normalized: []string{"09/2014"},
		},
		{
			name:       "invalid calendar date",
			text:       "Le 31/02/2012 n'existe pas.",
			values:     []string{},
			normalized: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities, matches := e.ChunkEntities(tt.text)
			assert.Equal(t, tt.values, entities[domain.EntityDates])
			assert.Equal(t, tt.normalized, normalizedOf(matches, domain.EntityDates))
		})
	}
}

func TestChunkEntities_Amounts(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name       string
		text       string
		values     []string
		normalized []string
	}{
		{
			name:       "thousand separated with tax",
			text:       "Le prix est de 245 000,00 € TTC payable à terme.",
			values:     []string{"245 000,00 € TTC"},
			normalized: []string{"245000.00 EUR"},
		},
		{
			name:       "plain euros",
			text:       "Un capital de 20000 euros.",
			values:     []string{"20000 euros"},
			normalized: []string{"20000.00 EUR"},
		},
		{
			name:       "dotted thousands",
			text:       "Un acompte de 1.500 € est versé.",
			values:     []string{"1.500 €"},
			normalized: []string{"1500.00 EUR"},
		},
		{
			name:       "prefixed currency",
			text:       "Total EUR 12,50",
			values:     []string{"EUR 12,50"},
			normalized: []string{"12.50 EUR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities, matches := e.ChunkEntities(tt.text)
			assert.Equal(t, tt.values, entities[domain.EntityAmounts])
			assert.Equal(t, tt.normalized, normalizedOf(matches, domain.EntityAmounts))
		})
	}
}

func TestChunkEntities_LegalReferences(t *testing.T) {
	e := newTestExtractor(t)

	entities, _ := e.ChunkEntities("Conformément à l'article L.261-10 du code de la construction et de l'habitation et à la loi n° 89-462.")

	assert.Equal(t, []string{
		"article L.261-10",
		"code de la construction et de l'habitation",
		"loi n° 89-462",
	}, entities[domain.EntityLegalReferences])
}

func TestChunkEntities_Norms(t *testing.T) {
	e := newTestExtractor(t)

	entities, _ := e.ChunkEntities("Béton conforme à la NF EN 206, mise en oeuvre selon le DTU 21 et la RE2020.")

	assert.Equal(t, []string{"NF EN 206", "DTU 21", "RE2020"}, entities[domain.EntityNorms])
}

func TestChunkEntities_Measurements(t *testing.T) {
	e := newTestExtractor(t)

	entities, _ := e.ChunkEntities("Un logement de 85,5 m² avec une dalle de 20 cm et une TVA de 5,5 %.")

	assert.Equal(t, []string{"85,5 m²", "20 cm", "5,5 %"}, entities[domain.EntityMeasurements])
}

func TestChunkEntities_Identifiers(t *testing.T) {
	e := newTestExtractor(t)

	text := "Le lot n° 12, cadastré section AB n° 45, vendu par la société immatriculée RCS Meaux 123 456 789 " +
		"sous le permis PC 077 307 12 00015."
	entities, _ := e.ChunkEntities(text)

	assert.Equal(t, []string{
		"lot n° 12",
		"cadastré section AB n° 45",
		"RCS Meaux 123 456 789",
		"PC 077 307 12 00015",
	}, entities[domain.EntityIdentifiers])
}

func TestChunkEntities_Materials(t *testing.T) {
	e := newTestExtractor(t)

	entities, _ := e.ChunkEntities("Les voiles sont en béton armé, les garde-corps en acier.")

	assert.Equal(t, []string{"béton armé", "acier"}, entities[domain.EntityMaterials])
}

func TestChunkEntities_PartyRoles(t *testing.T) {
	e := newTestExtractor(t)

	entities, matches := e.ChunkEntities("Le réservataire verse au Réservant un dépôt de garantie.")

	assert.Equal(t, []string{"réservataire", "réservant"}, entities[domain.EntityPartyRoles])
	assert.Equal(t, []string{"reservataire", "reservant"}, normalizedOf(matches, domain.EntityPartyRoles))
}

func TestChunkEntities_Locations(t *testing.T) {
	e := newTestExtractor(t)

	entities, _ := e.ChunkEntities("Un terrain situé à Montévrain, proche de Bussy-Saint-Georges (77).")

	assert.Equal(t, []string{"Montévrain", "Bussy-Saint-Georges"}, entities[domain.EntityLocations])
}

func TestChunkEntities_Deterministic(t *testing.T) {
	e := newTestExtractor(t)
	text := "Le prix de 150 000 € est payable le 15/09/2012 selon l'article 5."
	original := text

	first, firstMatches := e.ChunkEntities(text)
	second, secondMatches := e.ChunkEntities(text)

	assert.Equal(t, first, second)
	assert.Equal(t, firstMatches, secondMatches)
	assert.Equal(t, original, text)
}

func TestPhrasePattern(t *testing.T) {
	tests := []struct {
		phrase string
		text   string
		match  bool
	}{
		{"réservant", "LE RESERVANT", true},
		{"maître d'oeuvre", "le Maître d’œuvre", true},
		{"maître d'ouvrage", "le maitre  d'ouvrage", true},
		{"réservant", "le réservataire", false},
	}

	for _, tt := range tests {
		t.Run(tt.phrase+"/"+tt.text, func(t *testing.T) {
			re := regexp.MustCompile(`(?i)` + phrasePattern(tt.phrase))
			assert.Equal(t, tt.match, re.MatchString(tt.text))
		})
	}
}

func TestScanName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		mode nameMode
		want string
	}{
		{"caps company", " SCCV LA VALLEE MONTEVRAIN vend au", partyName, "SCCV LA VALLEE MONTEVRAIN"},
		{"person with honorific", ", Monsieur Jean DUPONT, demeurant", partyName, "Monsieur Jean DUPONT"},
		{"lead-in skipped", " la société BATIR SAS s'engage", partyName, "BATIR SAS"},
		{"lower case stops", " verse le prix", partyName, ""},
		{"role label", "»", partyName, ""},
		{"caps with article", " LE NEST est", capsName, "LE NEST"},
		{"place with particle", " Val d'Europe, près", placeName, "Val d'Europe"},
		{"stops at line end", " DUPONT\nARTICLE 2", partyName, "DUPONT"},
		{"particle alone", " de la", partyName, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanName(tt.in, tt.mode))
		})
	}
}
