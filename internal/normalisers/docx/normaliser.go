// Package docx provides a Normaliser for Word (DOCX) documents.
// Paragraphs become lines and table rows become pipe-separated lines,
// so tables survive as tables through segmentation.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// MIMEType is the DOCX content type.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// maxPartBytes caps the size of one decompressed XML part.
const maxPartBytes = 64 << 20

// ErrNoDocumentPart indicates the archive has no word/document.xml.
var ErrNoDocumentPart = fmt.Errorf("%w: docx has no word/document.xml", domain.ErrInvalidInput)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 60
}

// Normalise extracts the body text and the core-properties title.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: open docx archive: %w", domain.ErrInvalidInput, err)
	}

	body, err := readPart(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, ErrNoDocumentPart
	}

	text, err := documentText(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse document.xml: %w", domain.ErrInvalidInput, err)
	}

	return &driven.NormaliseResult{
		Text:  normalisers.CleanText(text),
		Title: coreTitle(reader),
	}, nil
}

// readPart returns the bytes of a named archive member, or nil when absent.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(io.LimitReader(rc, maxPartBytes))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return content, nil
	}
	return nil, nil
}

// documentText walks the WordprocessingML token stream. Text runs are
// concatenated, paragraphs end lines, tabs and breaks are kept, and each
// table row is written as "| cell | cell |".
func documentText(content []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		out    strings.Builder
		cell   strings.Builder
		cells  []string
		inText bool
		inTabs bool
		tables int
	)
	write := func(s string) {
		if tables > 0 {
			cell.WriteString(s)
			return
		}
		out.WriteString(s)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tabs":
				inTabs = true
			case "tab":
				if !inTabs {
					write("\t")
				}
			case "br", "cr":
				write("\n")
			case "tbl":
				tables++
			case "tr":
				if tables == 1 {
					cells = cells[:0]
				}
			case "tc":
				if tables == 1 {
					cell.Reset()
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "tabs":
				inTabs = false
			case "p":
				if tables > 0 {
					cell.WriteString(" ")
				} else {
					out.WriteString("\n")
				}
			case "tc":
				if tables == 1 {
					cells = append(cells, strings.Join(strings.Fields(cell.String()), " "))
				}
			case "tr":
				if tables == 1 && len(cells) > 0 {
					out.WriteString("| " + strings.Join(cells, " | ") + " |\n")
				}
			case "tbl":
				tables--
			}
		case xml.CharData:
			if inText {
				write(string(t))
			}
		}
	}
	return out.String(), nil
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// coreTitle returns the title from docProps/core.xml, if any.
func coreTitle(reader *zip.Reader) string {
	content, err := readPart(reader, "docProps/core.xml")
	if err != nil || content == nil {
		return ""
	}
	var core coreXML
	if err := xml.Unmarshal(content, &core); err != nil {
		return ""
	}
	return strings.TrimSpace(core.Title)
}
