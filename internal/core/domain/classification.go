package domain

// DocumentType identifies the legal or construction category of a document.
type DocumentType string

// Recognised document types. GeneralContract is the fallback when no
// type scores above the classification threshold.
const (
	// ReservationContract is a VEFA reservation contract (off-plan sale).
	ReservationContract DocumentType = "contrat_reservation_vefa"

	// TechnicalSpecification is a CCTP (cahier des clauses techniques particulières).
	TechnicalSpecification DocumentType = "cctp"

	// NotarialDeed is an authentic deed drawn up by a notary.
	NotarialDeed DocumentType = "acte_notarie"

	// ResidentialLease is a residential lease (bail d'habitation).
	ResidentialLease DocumentType = "bail_habitation"

	// CommercialLease is a commercial lease (bail commercial 3-6-9).
	CommercialLease DocumentType = "bail_commercial"

	// BuildingPermit is a building permit (permis de construire).
	BuildingPermit DocumentType = "permis_construire"

	// Quote is a works quote (devis).
	Quote DocumentType = "devis"

	// GeneralContract is the generic fallback type.
	GeneralContract DocumentType = "contrat_general"
)

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// IsGeneric returns true for the fallback type.
func (t DocumentType) IsGeneric() bool {
	return t == GeneralContract
}

// ContentBias describes which kind of content dominates a document type.
// It drives the width of the adaptive chunk size band.
type ContentBias string

// Content biases.
const (
	// BiasLegal favours short, clause-aligned chunks.
	BiasLegal ContentBias = "legal"

	// BiasFinancial favours longer chunks that keep figures with their context.
	BiasFinancial ContentBias = "financial"

	// BiasDefault is used when neither bias dominates.
	BiasDefault ContentBias = "default"
)

// Band is an adaptive word-count range for chunks.
// Invariant: 0 < Min <= Target <= Max.
type Band struct {
	Min    int `json:"min"`
	Target int `json:"target"`
	Max    int `json:"max"`
}

// Valid reports whether the band satisfies 0 < Min <= Target <= Max.
func (b Band) Valid() bool {
	return b.Min > 0 && b.Min <= b.Target && b.Target <= b.Max
}

// Midpoint returns the centre of the band.
func (b Band) Midpoint() float64 {
	return float64(b.Min+b.Max) / 2
}

// BandAround derives a band from an explicit target size:
// roughly two thirds of the target up to four thirds of it.
func BandAround(target int) Band {
	if target <= 0 {
		return Band{}
	}
	minSize := (target*67 + 50) / 100
	maxSize := (target*133 + 50) / 100
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < target {
		maxSize = target
	}
	return Band{Min: minSize, Target: target, Max: maxSize}
}

// AdaptiveParams are the per-type settings chosen by classification.
type AdaptiveParams struct {
	// Band is the chunk size range in words.
	Band Band `json:"band"`

	// Bias is the dominant content kind for the type.
	Bias ContentBias `json:"bias"`

	// Connectors are the transition phrases preferred for this type.
	// They weigh more than generic connectors when scoring coherence.
	Connectors []string `json:"connectors"`

	// Roles is the party-role vocabulary used by metadata extraction.
	// The first role is the primary one.
	Roles []string `json:"roles"`
}

// Classification is the outcome of document type detection.
type Classification struct {
	// Type is the winning document type.
	Type DocumentType `json:"type"`

	// Label is the human-readable name of the type.
	Label string `json:"label"`

	// Confidence is the winning score over the sum of all scores, in [0, 1].
	Confidence float64 `json:"confidence"`

	// Params are the adaptive parameters of the winning type.
	Params AdaptiveParams `json:"params"`

	// Scores holds the length-normalised score of every candidate type.
	Scores map[DocumentType]float64 `json:"scores"`

	// Matched lists the distinct lexicon terms found for the winning type.
	Matched []string `json:"matched"`
}
