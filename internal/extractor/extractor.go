// Package extractor pulls entities and document-level metadata out of
// French legal text with compiled patterns and the lexicon's vocabulary.
// Extraction is best-effort: a miss leaves a field empty and never fails.
package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

// Verify interface compliance.
var _ driven.MetadataExtractor = (*Extractor)(nil)

// locationKeyRe introduces a place name: "sis à", "située au", "commune de".
var locationKeyRe = regexp.MustCompile(`(?i)\b(?:sise?s?|situ[ée]e?s?|commune\s+de|ville\s+de|lieu-?dit)\s+(?:(?:à|au|aux|en)\s+)?`)

// roleMatcher finds one party role in text.
type roleMatcher struct {
	role   lexicon.Role
	folded string
	re     *regexp.Regexp
}

// material is a lexicon material with its folded form.
type material struct {
	term   string
	folded string
}

// Extractor implements driven.MetadataExtractor.
// It is immutable after New and safe for concurrent use.
type Extractor struct {
	lex *lexicon.Lexicon

	// roles holds every distinct role of the lexicon, keyed by role key.
	roles     map[string]*roleMatcher
	roleOrder []string

	materials []material

	projectQuotedRe *regexp.Regexp
	projectNamedRe  *regexp.Regexp
}

// New compiles the role, material and project patterns of a lexicon.
func New(lex *lexicon.Lexicon) *Extractor {
	e := &Extractor{
		lex:   lex,
		roles: make(map[string]*roleMatcher),
	}

	for _, t := range lex.DocumentTypes() {
		for _, r := range lex.Profile(t).Roles {
			if _, ok := e.roles[r.Key]; ok {
				continue
			}
			e.roles[r.Key] = &roleMatcher{
				role:   r,
				folded: lexicon.Fold(r.Phrase),
				re:     regexp.MustCompile(`(?i)` + phrasePattern(r.Phrase)),
			}
			e.roleOrder = append(e.roleOrder, r.Key)
		}
	}

	for _, m := range lex.Materials {
		e.materials = append(e.materials, material{term: m, folded: lexicon.Fold(m)})
	}
	// Longer materials first so "béton armé" is seen before "béton".
	sort.SliceStable(e.materials, func(i, j int) bool {
		return len(e.materials[i].folded) > len(e.materials[j].folded)
	})

	markers := append([]string(nil), lex.ProjectMarkers...)
	sort.SliceStable(markers, func(i, j int) bool { return len(markers[i]) > len(markers[j]) })
	alts := make([]string, 0, len(markers))
	for _, m := range markers {
		alts = append(alts, phrasePattern(m))
	}
	marker := `(?i)\b(?:` + strings.Join(alts, "|") + `)`
	e.projectQuotedRe = regexp.MustCompile(marker + `(?:\s+[\p{L}'’\-]+){0,2}?\s*[«"“]\s*([^»"”\n]{2,60}?)\s*[»"”]`)
	e.projectNamedRe = regexp.MustCompile(marker + `\s+(?:immobilier\s+)?(?:d[ée]nomm[ée]e?\s+|intitul[ée]e?\s+)?`)

	return e
}

// hit is one accepted entity occurrence.
type hit struct {
	start, end int
	value      string
	normalized string
}

func overlaps(hits []hit, h hit) bool {
	for _, o := range hits {
		if h.start < o.end && o.start < h.end {
			return true
		}
	}
	return false
}

// ChunkEntities extracts entities from a chunk. Every category is present
// in the result. Values are listed once per category in order of appearance;
// matches keep every occurrence with its normalised form.
func (e *Extractor) ChunkEntities(text string) (domain.Entities, []domain.EntityMatch) {
	hits := make(map[domain.EntityCategory][]hit)
	add := func(cat domain.EntityCategory, h hit) {
		if h.value == "" || overlaps(hits[cat], h) {
			return
		}
		hits[cat] = append(hits[cat], h)
	}

	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if h, ok := p.hit(text, m); ok {
				add(p.category, h)
			}
		}
	}
	for _, h := range locationHits(text) {
		add(domain.EntityLocations, h)
	}

	folded := lexicon.Fold(text)
	for _, key := range e.roleOrder {
		rm := e.roles[key]
		if i := indexTerm(folded, rm.folded); i >= 0 {
			add(domain.EntityPartyRoles, hit{start: i, end: i + len(rm.folded), value: rm.role.Phrase, normalized: rm.role.Key})
		}
	}
	for _, h := range e.materialHits(folded) {
		add(domain.EntityMaterials, h)
	}

	entities := domain.NewEntities()
	var matches []domain.EntityMatch
	for _, cat := range domain.EntityCategories {
		hs := hits[cat]
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].start < hs[j].start })
		for _, h := range hs {
			entities.Add(cat, h.value)
			matches = append(matches, domain.EntityMatch{
				Category:   cat,
				Value:      h.value,
				Normalized: h.normalized,
			})
		}
	}
	return entities, matches
}

// hit converts a submatch index slice into a hit.
func (p pattern) hit(text string, m []int) (hit, bool) {
	start, end := m[2*p.group], m[2*p.group+1]
	if start < 0 {
		return hit{}, false
	}
	value := collapse(text[start:end])
	normalized := value
	if p.normalize != nil {
		subs := make([]string, len(m)/2)
		for i := range subs {
			if m[2*i] >= 0 {
				subs[i] = text[m[2*i]:m[2*i+1]]
			}
		}
		normalized = p.normalize(subs)
		if normalized == "" {
			return hit{}, false
		}
	}
	return hit{start: start, end: end, value: value, normalized: normalized}, true
}

// locationHits finds place names introduced by a location keyword.
func locationHits(text string) []hit {
	var out []hit
	for _, loc := range locationKeyRe.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		name := scanName(rest, placeName)
		if name == "" {
			continue
		}
		start := loc[1] + strings.Index(rest, strings.Fields(name)[0])
		out = append(out, hit{start: start, end: start + len(name), value: name, normalized: name})
	}
	return out
}

// materialHits reports lexicon materials, skipping a material whose every
// occurrence sits inside a longer one ("béton" within "béton armé").
func (e *Extractor) materialHits(folded string) []hit {
	var (
		out   []hit
		found []material
	)
	for _, m := range e.materials {
		n := lexicon.CountTerm(folded, m.folded)
		if n == 0 {
			continue
		}
		for _, longer := range found {
			n -= lexicon.CountTerm(folded, longer.folded) * lexicon.CountTerm(longer.folded, m.folded)
		}
		found = append(found, m)
		if n <= 0 {
			continue
		}
		i := indexTerm(folded, m.folded)
		out = append(out, hit{start: i, end: i + len(m.folded), value: m.term, normalized: m.folded})
	}
	return out
}

// indexTerm returns the offset of the first whole-word occurrence of term, or -1.
func indexTerm(folded, term string) int {
	offset := 0
	for offset < len(folded) {
		i := strings.Index(folded[offset:], term)
		if i < 0 {
			return -1
		}
		start := offset + i
		if lexicon.Bounded(folded, start, start+len(term)) {
			return start
		}
		offset = start + 1
	}
	return -1
}

// isRoleWord reports whether a name is only a role label ("LE RESERVANT").
func (e *Extractor) isRoleWord(name string) bool {
	f := stripArticle(lexicon.Fold(name))
	for _, rm := range e.roles {
		if f == rm.folded || f == lexicon.Fold(rm.role.Key) {
			return true
		}
	}
	return false
}
