package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
)

const (
	// headBytes bounds the part of the document searched for the title,
	// parties, project and location.
	headBytes = 6000

	// titleLines is how many non-empty lines may hold the title.
	titleLines = 12

	maxTitleRunes = 120

	// designationWindow is how far back a designation looks for its name.
	designationWindow = 400
)

var (
	// dateAnchors introduce the signature or reference date, strongest first.
	dateAnchors = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfait\s+(?:à|a)\s+[^\n]{1,80}?[\s,]+le\s+`),
		regexp.MustCompile(`(?i)\ben\s+date\s+du\s+`),
		regexp.MustCompile(`(?i)\bsign[ée]e?s?\s+le\s+`),
	}

	// designationRe matches "ci-après dénommée «LE RESERVANT»".
	designationRe = regexp.MustCompile(`(?i)ci-apr[eè]s\s+(?:d[ée]nomm[ée]e?s?|d[ée]sign[ée]e?s?|appel[ée]e?s?)(?:\s*\(\s*e?s?\s*\))?\s*,?\s*[«"“]\s*([^»"”\n]{2,40}?)\s*[»"”]`)

	// companyRe matches "société dénommée X au capital de ...".
	companyRe = regexp.MustCompile(`(?i)\bd[ée]nomm[ée]e?\s+([^\n«"“]{2,120}?),?\s+(?:au\s+capital|dont\s+le\s+si[èe]ge|immatricul[ée]e)`)

	honorificRe = regexp.MustCompile(`\b(?:M\.|Mme|Monsieur|Madame|Maître|Me)\s`)

	quotedRe = regexp.MustCompile(`[«"“]\s*([^»"”\n]{2,60}?)\s*[»"”]`)

	headingExcludeRe = regexp.MustCompile(`(?i)^(?:article|art\.|chapitre|titre|section|annexe|lot)\b`)
)

// DocumentMetadata extracts title, date, parties, project and location.
// The type selects the role vocabulary and the title phrases.
func (e *Extractor) DocumentMetadata(text string, docType domain.DocumentType) domain.DocumentMetadata {
	head := headOf(text, headBytes)
	return domain.DocumentMetadata{
		Title:    e.title(head, docType),
		Date:     documentDate(text),
		Parties:  e.parties(head, docType),
		Project:  e.project(head),
		Location: location(head),
	}
}

// headOf cuts s to at most n bytes on a rune boundary.
func headOf(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// title returns the first upper-case heading among the first lines, else
// the first line holding one of the type's title phrases.
func (e *Extractor) title(head string, docType domain.DocumentType) string {
	var lines []string
	for _, l := range strings.Split(head, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
		if len(lines) == titleLines {
			break
		}
	}

	for _, l := range lines {
		if isHeadingLine(l) {
			return collapse(l)
		}
	}

	for _, phrase := range e.lex.Profile(docType).TitlePhrases {
		fp := lexicon.Fold(phrase)
		for _, l := range lines {
			if !lexicon.ContainsTerm(lexicon.Fold(l), fp) {
				continue
			}
			if utf8.RuneCountInString(l) <= maxTitleRunes {
				return collapse(l)
			}
			return strings.ToUpper(phrase)
		}
	}
	return ""
}

func isHeadingLine(line string) bool {
	if utf8.RuneCountInString(line) > maxTitleRunes || strings.Contains(line, "|") {
		return false
	}
	if headingExcludeRe.MatchString(line) {
		return false
	}
	letters, upper := 0, 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= 5 && upper*10 >= letters*8
}

// documentDate returns the date after "fait à X le", "en date du" or
// "signé le", else the first full date of the text, as DD/MM/YYYY.
func documentDate(text string) string {
	for _, anchor := range dateAnchors {
		for _, loc := range anchor.FindAllStringIndex(text, -1) {
			if d := firstFullDate(headOf(text[loc[1]:], 40)); d != "" {
				return d
			}
		}
	}
	return firstFullDate(text)
}

// firstFullDate returns the earliest valid day-precision date in s.
func firstFullDate(s string) string {
	best, bestAt := "", -1
	for _, p := range patterns {
		if !p.fullDate {
			continue
		}
		for _, m := range p.re.FindAllStringSubmatchIndex(s, -1) {
			if bestAt >= 0 && m[0] >= bestAt {
				break
			}
			if h, ok := p.hit(s, m); ok {
				best, bestAt = h.normalized, m[0]
				break
			}
		}
	}
	return best
}

// parties maps the type's role keys to party names. Designations
// ("X ... ci-après dénommée «LE RESERVANT»") win over proximity
// ("Le réservant SCCV X"); a company "dénommée X au capital" fills the
// primary role last.
func (e *Extractor) parties(head string, docType domain.DocumentType) map[string]string {
	profile := e.lex.Profile(docType)
	out := make(map[string]string)

	prevEnd := 0
	for _, m := range designationRe.FindAllStringSubmatchIndex(head, -1) {
		key := roleKeyFor(profile.Roles, stripArticle(lexicon.Fold(head[m[2]:m[3]])))
		from := max(prevEnd, m[0]-designationWindow)
		for from < m[0] && !utf8.RuneStart(head[from]) {
			from++
		}
		prevEnd = m[1]
		if key == "" || out[key] != "" {
			continue
		}
		if name := nameBefore(head[from:m[0]]); name != "" {
			out[key] = name
		}
	}

	for _, r := range profile.Roles {
		if out[r.Key] != "" {
			continue
		}
		rm, ok := e.roles[r.Key]
		if !ok {
			continue
		}
		for _, loc := range findBounded(rm.re, head) {
			if name := scanName(head[loc[1]:], partyName); name != "" && !e.isRoleWord(name) {
				out[r.Key] = name
				break
			}
		}
	}

	if len(profile.Roles) > 0 && out[profile.Roles[0].Key] == "" {
		if m := companyRe.FindStringSubmatch(head); m != nil {
			if name := companyName(m[1]); name != "" {
				out[profile.Roles[0].Key] = name
			}
		}
	}
	return out
}

func roleKeyFor(roles []lexicon.Role, label string) string {
	for _, r := range roles {
		if label == lexicon.Fold(r.Phrase) || label == lexicon.Fold(r.Key) {
			return r.Key
		}
	}
	return ""
}

// nameBefore finds the party named in the text preceding a designation:
// the last company designation, else the last person introduced by an honorific.
func nameBefore(window string) string {
	if all := companyRe.FindAllStringSubmatch(window, -1); len(all) > 0 {
		if name := companyName(all[len(all)-1][1]); name != "" {
			return name
		}
	}
	if all := honorificRe.FindAllStringIndex(window, -1); len(all) > 0 {
		return scanName(window[all[len(all)-1][0]:], partyName)
	}
	return ""
}

func companyName(raw string) string {
	name := strings.TrimRight(collapse(raw), " ,;")
	if name == "" || utf8.RuneCountInString(name) > maxNameRunes {
		return ""
	}
	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(r) && !unicode.IsDigit(r) {
		return ""
	}
	return name
}

// project returns the programme name: a quoted name after a project
// marker, else an upper-case name after one, else the first quoted name
// that is not a role label.
func (e *Extractor) project(head string) string {
	if m := e.projectQuotedRe.FindStringSubmatch(head); m != nil {
		if name := collapse(m[1]); !e.isRoleWord(name) {
			return name
		}
	}
	for _, loc := range e.projectNamedRe.FindAllStringIndex(head, -1) {
		if name := scanName(head[loc[1]:], capsName); name != "" && !e.isRoleWord(name) {
			return name
		}
	}
	for _, m := range quotedRe.FindAllStringSubmatch(head, -1) {
		if name := collapse(m[1]); !e.isRoleWord(name) {
			return name
		}
	}
	return ""
}

// location returns the first place introduced by a location keyword,
// else the first "Name (77)" place.
func location(head string) string {
	if hits := locationHits(head); len(hits) > 0 {
		return hits[0].value
	}
	if m := departmentRe.FindStringSubmatch(head); m != nil {
		return collapse(m[1])
	}
	return ""
}
