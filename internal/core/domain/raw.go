package domain

// RawDocument represents opaque file bytes before normalisation.
// Loaders produce it from a path; normalisers turn it into plain text.
type RawDocument struct {
	// URI is the original location (usually a file path).
	URI string

	// MIMEType is the detected content type (e.g., "text/plain").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
