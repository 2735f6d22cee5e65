package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise extracts readable text and the <title>.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r, err := charset.NewReader(bytes.NewReader(raw.Content), raw.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", raw.URI, err)
	}

	text, title, err := extract(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", raw.URI, err)
	}

	return &driven.NormaliseResult{
		Text:  normalisers.CleanText(tidyLines(text)),
		Title: title,
	}, nil
}

// skipped elements contribute no text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Template: true,
	atom.Head:     true,
}

// blocks end the current line.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Blockquote: true, atom.Pre: true, atom.Header: true, atom.Footer: true,
	atom.Table: true, atom.Hr: true, atom.Br: true,
}

// extract walks the token stream of an HTML document.
func extract(r io.Reader) (string, string, error) {
	z := html.NewTokenizer(r)

	var (
		out     strings.Builder
		cell    strings.Builder
		cells   []string
		title   strings.Builder
		skip    int
		inTitle bool
		inCell  bool
	)
	write := func(s string) {
		if inCell {
			cell.WriteString(s)
			return
		}
		out.WriteString(s)
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return out.String(), strings.Join(strings.Fields(title.String()), " "), nil
			}
			return "", "", z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Title {
				inTitle = tt == html.StartTagToken
				continue
			}
			if skipped[a] {
				if tt == html.StartTagToken {
					skip++
				}
				continue
			}
			switch {
			case a == atom.Tr:
				cells = cells[:0]
			case a == atom.Td || a == atom.Th:
				inCell = true
				cell.Reset()
			case blocks[a]:
				write("\n")
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Title:
				inTitle = false
			case skipped[a]:
				if skip > 0 {
					skip--
				}
			case a == atom.Td || a == atom.Th:
				cells = append(cells, strings.Join(strings.Fields(cell.String()), " "))
				inCell = false
			case a == atom.Tr:
				if len(cells) > 0 {
					out.WriteString("\n| " + strings.Join(cells, " | ") + " |\n")
				}
				cells = cells[:0]
			case blocks[a]:
				write("\n")
			}

		case html.TextToken:
			if inTitle {
				title.Write(z.Text())
				continue
			}
			if skip > 0 {
				continue
			}
			write(collapseSpaces(string(z.Text())))
		}
	}
}

// collapseSpaces folds runs of whitespace into one space. Text tokens keep
// their source newlines otherwise, which are layout and not structure.
func collapseSpaces(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	lead := s[0] == ' ' || s[0] == '\n' || s[0] == '\t' || s[0] == '\r'
	last := s[len(s)-1]
	trail := last == ' ' || last == '\n' || last == '\t' || last == '\r'
	out := strings.Join(strings.Fields(s), " ")
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

// tidyLines trims each line and removes empty lines.
func tidyLines(content string) string {
	lines := strings.Split(content, "\n")
	result := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
