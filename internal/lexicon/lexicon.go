package lexicon

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.TypeCatalog = (*Lexicon)(nil)

//go:embed lexicon.toml
var defaultData []byte

// Term is a weighted lexicon entry.
type Term struct {
	Term   string  `toml:"term"`
	Weight float64 `toml:"weight"`

	folded string
}

// Folded returns the accent- and case-folded form of the term.
func (t Term) Folded() string {
	return t.folded
}

// Role is a party role: the parties map key and the phrase that names it in text.
type Role struct {
	Key    string `toml:"key"`
	Phrase string `toml:"phrase"`
}

// Category is a content category with its trigger keywords.
type Category struct {
	Name     string   `toml:"name"`
	Keywords []string `toml:"keywords"`

	folded []string
}

// Profile is the lookup entry for one document type.
type Profile struct {
	ID           string      `toml:"id"`
	Label        string      `toml:"label"`
	Bias         string      `toml:"bias"`
	Band         domain.Band `toml:"band"`
	Roles        []Role      `toml:"roles"`
	Connectors   []string    `toml:"connectors"`
	TitlePhrases []string    `toml:"title_phrases"`
	Keywords     []Term      `toml:"keywords"`

	foldedConnectors []string
}

// Type returns the document type of the profile.
func (p *Profile) Type() domain.DocumentType {
	return domain.DocumentType(p.ID)
}

// Lexicon is the full immutable vocabulary.
type Lexicon struct {
	MinScore          float64    `toml:"min_score"`
	Abbreviations     []string   `toml:"abbreviations"`
	Connectors        []string   `toml:"connectors"`
	DomainKeywords    []Term     `toml:"domain_keywords"`
	Materials         []string   `toml:"materials"`
	ProjectMarkers    []string   `toml:"project_markers"`
	ContentCategories []Category `toml:"content_categories"`
	Types             []Profile  `toml:"types"`
	Generic           Profile    `toml:"generic"`

	abbreviations    map[string]struct{}
	foldedConnectors []string
	byType           map[domain.DocumentType]*Profile
}

// Load parses the embedded default lexicon.
func Load() (*Lexicon, error) {
	return Parse(defaultData)
}

// Parse decodes and validates a lexicon from TOML data.
func Parse(data []byte) (*Lexicon, error) {
	var l Lexicon
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing lexicon: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("validating lexicon: %w", err)
	}
	l.index()
	return &l, nil
}

func (l *Lexicon) validate() error {
	if len(l.Types) == 0 {
		return fmt.Errorf("%w: no document types", domain.ErrInvalidInput)
	}
	if l.Generic.ID == "" {
		return fmt.Errorf("%w: missing generic profile", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool)
	for _, p := range append(append([]Profile(nil), l.Types...), l.Generic) {
		if p.ID == "" {
			return fmt.Errorf("%w: profile without id", domain.ErrInvalidInput)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate profile %q", domain.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
		if !p.Band.Valid() {
			return fmt.Errorf("%w: profile %q has invalid band %+v", domain.ErrInvalidInput, p.ID, p.Band)
		}
		for _, kw := range p.Keywords {
			if kw.Weight <= 0 {
				return fmt.Errorf("%w: term %q of %q has non-positive weight", domain.ErrInvalidInput, kw.Term, p.ID)
			}
		}
	}
	return nil
}

// index folds every term once so matching never re-folds vocabulary.
func (l *Lexicon) index() {
	l.abbreviations = make(map[string]struct{}, len(l.Abbreviations))
	for _, a := range l.Abbreviations {
		l.abbreviations[Fold(a)] = struct{}{}
	}
	l.foldedConnectors = foldAll(l.Connectors)
	foldTerms(l.DomainKeywords)
	for i := range l.ContentCategories {
		l.ContentCategories[i].folded = foldAll(l.ContentCategories[i].Keywords)
	}

	l.byType = make(map[domain.DocumentType]*Profile, len(l.Types)+1)
	for i := range l.Types {
		indexProfile(&l.Types[i])
		l.byType[l.Types[i].Type()] = &l.Types[i]
	}
	indexProfile(&l.Generic)
	l.byType[l.Generic.Type()] = &l.Generic
}

func indexProfile(p *Profile) {
	foldTerms(p.Keywords)
	p.foldedConnectors = foldAll(p.Connectors)
}

func foldTerms(terms []Term) {
	for i := range terms {
		terms[i].folded = Fold(terms[i].Term)
	}
}

func foldAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, Fold(v))
	}
	return out
}

// DocumentTypes returns the known types in table order, generic last.
func (l *Lexicon) DocumentTypes() []domain.DocumentType {
	types := make([]domain.DocumentType, 0, len(l.Types)+1)
	for i := range l.Types {
		types = append(types, l.Types[i].Type())
	}
	return append(types, l.Generic.Type())
}

// Profile returns the profile of a type. Unknown types get the generic profile.
func (l *Lexicon) Profile(t domain.DocumentType) *Profile {
	if p, ok := l.byType[t]; ok {
		return p
	}
	return &l.Generic
}

// Has reports whether t is a type of this lexicon.
func (l *Lexicon) Has(t domain.DocumentType) bool {
	_, ok := l.byType[t]
	return ok
}

// Label returns the human-readable name of a type.
func (l *Lexicon) Label(t domain.DocumentType) string {
	return l.Profile(t).Label
}

// Params returns the adaptive parameters of a type.
func (l *Lexicon) Params(t domain.DocumentType) domain.AdaptiveParams {
	p := l.Profile(t)
	roles := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, r.Key)
	}
	return domain.AdaptiveParams{
		Band:       p.Band,
		Bias:       domain.ContentBias(p.Bias),
		Connectors: append([]string(nil), p.Connectors...),
		Roles:      roles,
	}
}

// IsAbbreviation reports whether a folded token, without its final period,
// is a known abbreviation.
func (l *Lexicon) IsAbbreviation(token string) bool {
	_, ok := l.abbreviations[token]
	return ok
}

// GenericConnectors returns the folded connectors shared by every type.
func (l *Lexicon) GenericConnectors() []string {
	return l.foldedConnectors
}

// PreferredConnectors returns the folded connectors preferred by a type.
func (l *Lexicon) PreferredConnectors(t domain.DocumentType) []string {
	return l.Profile(t).foldedConnectors
}

// ConnectorCount returns the number of distinct connector phrases across the vocabulary.
func (l *Lexicon) ConnectorCount() int {
	seen := make(map[string]struct{})
	for _, c := range l.foldedConnectors {
		seen[c] = struct{}{}
	}
	for _, t := range l.DocumentTypes() {
		for _, c := range l.PreferredConnectors(t) {
			seen[c] = struct{}{}
		}
	}
	return len(seen)
}

// TermCount returns the number of weighted classification terms across types.
func (l *Lexicon) TermCount() int {
	n := 0
	for i := range l.Types {
		n += len(l.Types[i].Keywords)
	}
	return n
}

// FoldedKeywords returns the folded keywords of a content category.
func (c Category) FoldedKeywords() []string {
	return c.folded
}
