package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	n := New()

	assert.Contains(t, n.SupportedMIMETypes(), "text/html")
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise(t *testing.T) {
	page := `<!DOCTYPE html>
<html><head><title> Bail
 commercial </title><style>p { color: red }</style></head>
<body>
<script>var x = "ignored";</script>
<h1>BAIL COMMERCIAL</h1>
<p>Le <b>bailleur</b> loue au preneur
   les locaux sis &agrave; Lyon.</p>
<table>
<tr><th>Période</th><th>Loyer</th></tr>
<tr><td>Année 1</td><td>12&nbsp;000 €</td></tr>
</table>
<ul><li>Premier point</li><li>Second point</li></ul>
</body></html>`

	raw := &domain.RawDocument{URI: "bail.html", MIMEType: "text/html; charset=utf-8", Content: []byte(page)}
	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "Bail commercial", result.Title)
	assert.Equal(t, "BAIL COMMERCIAL\n"+
		"Le bailleur loue au preneur les locaux sis à Lyon.\n"+
		"| Période | Loyer |\n"+
		"| Année 1 | 12 000 € |\n"+
		"Premier point\n"+
		"Second point", result.Text)
	assert.NotContains(t, result.Text, "ignored")
}

func TestNormalise_Latin1(t *testing.T) {
	page := []byte("<html><head><meta charset=\"iso-8859-1\"></head><body><p>Acte notari\xe9</p></body></html>")

	result, err := New().Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/html", Content: page})

	require.NoError(t, err)
	assert.Equal(t, "Acte notarié", result.Text)
}

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"\n  \n", " "},
		{"a  b", "a b"},
		{" a\n b ", " a b "},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, collapseSpaces(tt.in))
	}
}
