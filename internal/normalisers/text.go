package normalisers

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	trailingSpace = regexp.MustCompile(`[ \t\x{00a0}]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// CleanText prepares extracted text for chunking: Unix newlines, NFC
// composition, no trailing spaces and at most one blank line in a row.
// Line structure is kept because headings and tables are found per line.
func CleanText(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = norm.NFC.String(s)
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// BaseMIME strips parameters from a MIME type: "text/plain; charset=utf-8"
// becomes "text/plain".
func BaseMIME(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
