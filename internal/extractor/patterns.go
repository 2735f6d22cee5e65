package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

const months = `janvier|f[ée]vrier|mars|avril|mai|juin|juillet|ao[uû]t|septembre|octobre|novembre|d[ée]cembre`

// monthNumbers maps folded month names to their number.
var monthNumbers = map[string]int{
	"janvier": 1, "fevrier": 2, "mars": 3, "avril": 4, "mai": 5, "juin": 6,
	"juillet": 7, "aout": 8, "septembre": 9, "octobre": 10, "novembre": 11, "decembre": 12,
}

const (
	thousandSep = `[ \x{00a0}\x{202f}.]`
	groupedNum  = `\d{1,3}(?:` + thousandSep + `\d{3})+(?:,\d{1,2})?`
	plainNum    = `\d+(?:[.,]\d{1,2})?`
	currency    = `(?:€|euros?\b|EUR\b)`
	taxSuffix   = `(?:\s*(?:HT\b|TTC\b|H\.T\.|T\.T\.C\.))?`
	decimal     = `\d+(?:[.,]\d+)?`
)

// pattern is one compiled entity rule.
type pattern struct {
	category domain.EntityCategory

	re *regexp.Regexp

	// group selects the submatch used as the value; 0 is the whole match.
	group int

	// normalize returns the canonical form from the submatches, or "" to
	// reject the hit. Nil keeps the value with whitespace collapsed.
	normalize func(m []string) string

	// fullDate marks day-precision date patterns.
	fullDate bool
}

// patterns lists every entity rule. Within a category, earlier rules win
// over later ones on overlapping text.
var patterns = []pattern{
	// Dates
	{category: domain.EntityDates, re: regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`), normalize: isoDate, fullDate: true},
	{category: domain.EntityDates, re: regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4}|\d{2})\b`), normalize: numericDate, fullDate: true},
	{category: domain.EntityDates, re: regexp.MustCompile(`(?i)\b(\d{1,2}|1er|premier)\s+(` + months + `)\s+(\d{4})\b`), normalize: spelledDate, fullDate: true},
	{category: domain.EntityDates, re: regexp.MustCompile(`(?i)\b(` + months + `)\s+(\d{4})\b`), normalize: monthYear},

	// Monetary amounts
	{category: domain.EntityAmounts, re: regexp.MustCompile(`(?i)\b(` + groupedNum + `)\s*` + currency + taxSuffix), normalize: amount},
	{category: domain.EntityAmounts, re: regexp.MustCompile(`(?i)\b(` + plainNum + `)\s*` + currency + taxSuffix), normalize: amount},
	{category: domain.EntityAmounts, re: regexp.MustCompile(`(?i)(?:€|\bEUR)\s*(` + groupedNum + `|` + plainNum + `)`), normalize: amount},

	// Legal references
	{category: domain.EntityLegalReferences, re: regexp.MustCompile(`(?i)\barticles?\s+(?:[LRD]\.?\s?)?\d+(?:[-.]\d+)*(?:\s+(?:bis|ter|quater)\b)?`)},
	{category: domain.EntityLegalReferences, re: regexp.MustCompile(`\b[LRD]\.?\s?\d{1,4}(?:-\d+)+`)},
	{category: domain.EntityLegalReferences, re: regexp.MustCompile(`(?i)\bcode\s+(?:civil|de\s+commerce|de\s+la\s+construction\s+et\s+de\s+l['’]habitation|de\s+l['’]urbanisme|g[ée]n[ée]ral\s+des\s+imp[ôo]ts|de\s+l['’]environnement|du\s+travail|de\s+proc[ée]dure\s+civile|de\s+la\s+consommation)`)},
	{category: domain.EntityLegalReferences, re: regexp.MustCompile(`(?i)\b(?:loi|d[ée]cret|ordonnance|arr[êe]t[ée])\s+n\s?[°o]\s?\d[\d\-]*`)},
	{category: domain.EntityLegalReferences, re: regexp.MustCompile(`(?i)\b(?:loi|d[ée]cret|ordonnance)\s+du\s+(?:\d{1,2}|1er)\s+(?:` + months + `)\s+\d{4}`)},

	// Norms and standards
	{category: domain.EntityNorms, re: regexp.MustCompile(`\bNF\s+EN\s+(?:ISO\s+)?\d+(?:[-.:]\d+)*`)},
	{category: domain.EntityNorms, re: regexp.MustCompile(`\bNF\s+(?:DTU\s+)?[A-Z]?\s?\d+(?:[-.]\d+)*`)},
	{category: domain.EntityNorms, re: regexp.MustCompile(`\bDTU\s*\d+(?:\.\d+)*`)},
	{category: domain.EntityNorms, re: regexp.MustCompile(`\b(?:EN\s+)?ISO\s+\d+(?:[-:]\d+)*`)},
	{category: domain.EntityNorms, re: regexp.MustCompile(`\b(?:RE\s?20(?:20|25)|RT\s?20(?:05|12)|Eurocode\s+\d+)\b`)},

	// Measurements
	{category: domain.EntityMeasurements, re: regexp.MustCompile(`(?i)\b` + decimal + `\s*(?:m²|m2\b|mètres?\s+carrés?)`)},
	{category: domain.EntityMeasurements, re: regexp.MustCompile(`(?i)\b` + decimal + `\s*(?:m³|m3\b|mètres?\s+cubes?)`)},
	{category: domain.EntityMeasurements, re: regexp.MustCompile(`(?i)\b` + decimal + `\s*(?:km|cm|mm|ml|m|mètres?|centimètres?|millimètres?)\b`)},
	{category: domain.EntityMeasurements, re: regexp.MustCompile(`(?i)\b` + decimal + `\s*(?:kg|tonnes?|kN|MPa)\b`)},
	{category: domain.EntityMeasurements, re: regexp.MustCompile(`(?i)\b` + decimal + `\s*(?:%|pour\s*cent\b)`)},

	// Identifiers
	{category: domain.EntityIdentifiers, re: regexp.MustCompile(`(?i)\bRCS\s+(?:de\s+)?\p{L}[\p{L}\-]*(?:\s+\p{L}[\p{L}\-]*)?\s+(?:[AB]\s+)?\d{3}\s?\d{3}\s?\d{3}`)},
	{category: domain.EntityIdentifiers, re: regexp.MustCompile(`(?i)\bSIRE[NT]\s*(?:n\s?°\s*)?:?\s*\d{3}\s?\d{3}\s?\d{3}(?:\s?\d{5})?`)},
	{category: domain.EntityIdentifiers, re: regexp.MustCompile(`(?i)\blots?\s+(?:n\s?[°o]\s?)?\d+\b`)},
	{category: domain.EntityIdentifiers, re: regexp.MustCompile(`(?i)\b(?:cadastr[ée]e?s?\s+)?section\s+[A-Z]{1,2}\s+(?:n\s?°\s*)?\d+`)},
	{category: domain.EntityIdentifiers, re: regexp.MustCompile(`\bPC\s*(?:n\s?°\s*)?\d{3}\s?\d{3}\s?\d{2}\s?[A-Z]?\s?\d{4,5}`)},

	// Locations
	{category: domain.EntityLocations, re: departmentRe, group: 1},
}

// departmentRe matches a place name followed by its department or postcode: "Montévrain (77)".
var departmentRe = regexp.MustCompile(`(\p{Lu}[\p{L}'’\-]*(?:[ \-](?:\p{Lu}[\p{L}'’\-]*|[dl]['’]\p{Lu}[\p{L}\-]*|sur|sous|en|de|du|la|le|les|lès))*)\s*\((?:\d{2}|\d{5}|2[AB])\)`)

// PatternCount returns the number of compiled entity rules.
func PatternCount() int {
	return len(patterns)
}

func isoDate(m []string) string {
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return formatDate(d, mo, y)
}

func numericDate(m []string) string {
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		if y < 70 {
			y += 2000
		} else {
			y += 1900
		}
	}
	return formatDate(d, mo, y)
}

func spelledDate(m []string) string {
	d := 1
	if day := strings.ToLower(m[1]); day != "1er" && day != "premier" {
		d, _ = strconv.Atoi(day)
	}
	y, _ := strconv.Atoi(m[3])
	return formatDate(d, monthNumbers[lexicon.Fold(m[2])], y)
}

func monthYear(m []string) string {
	mo := monthNumbers[lexicon.Fold(m[1])]
	y, _ := strconv.Atoi(m[2])
	if mo == 0 || y == 0 {
		return ""
	}
	return fmt.Sprintf("%02d/%04d", mo, y)
}

// formatDate renders a valid calendar date as DD/MM/YYYY, or "" when invalid.
func formatDate(d, mo, y int) string {
	if mo < 1 || mo > 12 || d < 1 || y < 1000 {
		return ""
	}
	if d > time.Date(y, time.Month(mo)+1, 0, 0, 0, 0, 0, time.UTC).Day() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d, mo, y)
}

var (
	spaceRemover = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")
	dotThousands = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
)

// amount normalises a figure to "245000.00 EUR".
func amount(m []string) string {
	s := spaceRemover.Replace(m[1])
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dotThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(f, 'f', 2, 64) + " EUR"
}

// collapse joins whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
