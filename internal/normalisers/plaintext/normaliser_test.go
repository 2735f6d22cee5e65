package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	n := New()

	assert.Contains(t, n.SupportedMIMETypes(), "text/plain")
	assert.Equal(t, 5, n.Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		mime    string
		want    string
	}{
		{
			name:    "utf-8 unchanged",
			content: []byte("Article 1 - Objet\nLe réservant s'engage."),
			mime:    "text/plain",
			want:    "Article 1 - Objet\nLe réservant s'engage.",
		},
		{
			name:    "windows line endings",
			content: []byte("Ligne un\r\nLigne deux\r\n"),
			mime:    "text/plain",
			want:    "Ligne un\nLigne deux",
		},
		{
			name:    "latin-1 bytes",
			content: []byte("Le r\xe9servant verse 100 \x80."),
			mime:    "text/plain",
			want:    "Le réservant verse 100 €.",
		},
		{
			name:    "declared charset",
			content: []byte("Bail d'habitation \xe0 Lyon"),
			mime:    "text/plain; charset=iso-8859-1",
			want:    "Bail d'habitation à Lyon",
		},
		{
			name:    "byte order mark and blank runs",
			content: []byte("\xef\xbb\xbfTitre\n\n\n\nCorps   \n"),
			mime:    "",
			want:    "Titre\n\nCorps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &domain.RawDocument{URI: "contrat.txt", MIMEType: tt.mime, Content: tt.content}

			result, err := New().Normalise(context.Background(), raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Text)
			assert.Empty(t, result.Title)
		})
	}
}
