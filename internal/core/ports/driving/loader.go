package driving

import "context"

// DocumentLoader reads a file and returns its plain text.
type DocumentLoader interface {
	// Load reads the file at path, detects its format and extracts the text.
	Load(ctx context.Context, path string) (string, error)
}
