package domain

// EntityCategory names a family of extracted entities.
type EntityCategory string

// Entity categories.
const (
	EntityDates           EntityCategory = "dates"
	EntityAmounts         EntityCategory = "monetary_amounts"
	EntityLegalReferences EntityCategory = "legal_references"
	EntityPartyRoles      EntityCategory = "party_roles"
	EntityLocations       EntityCategory = "locations"
	EntityMeasurements    EntityCategory = "measurements"
	EntityNorms           EntityCategory = "norms_standards"
	EntityMaterials       EntityCategory = "materials"
	EntityIdentifiers     EntityCategory = "identifiers"
)

// EntityCategories lists every category in output order.
var EntityCategories = []EntityCategory{
	EntityDates,
	EntityAmounts,
	EntityLegalReferences,
	EntityPartyRoles,
	EntityLocations,
	EntityMeasurements,
	EntityNorms,
	EntityMaterials,
	EntityIdentifiers,
}

// Entities maps each category to its distinct values, in order of appearance.
type Entities map[EntityCategory][]string

// NewEntities returns an Entities value with every category present and empty.
func NewEntities() Entities {
	e := make(Entities, len(EntityCategories))
	for _, c := range EntityCategories {
		e[c] = []string{}
	}
	return e
}

// Add appends a value to a category unless it is already present.
func (e Entities) Add(category EntityCategory, value string) {
	for _, v := range e[category] {
		if v == value {
			return
		}
	}
	if e[category] == nil {
		e[category] = []string{}
	}
	e[category] = append(e[category], value)
}

// Count returns the total number of values across categories.
func (e Entities) Count() int {
	n := 0
	for _, values := range e {
		n += len(values)
	}
	return n
}

// DistinctCategories returns the number of non-empty categories.
func (e Entities) DistinctCategories() int {
	n := 0
	for _, values := range e {
		if len(values) > 0 {
			n++
		}
	}
	return n
}

// EntityMatch is a single pattern hit.
type EntityMatch struct {
	// Category is the entity family.
	Category EntityCategory

	// Value is the text as it appears in the chunk.
	Value string

	// Normalized is the canonical form (DD/MM/YYYY dates, "1234.00 EUR" amounts).
	// It equals Value when no normalisation applies.
	Normalized string
}
