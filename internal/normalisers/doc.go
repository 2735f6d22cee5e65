// Package normalisers turns uploaded files into the plain text the chunker
// reads. The Registry picks a normaliser by MIME type and falls back to
// content sniffing when no normaliser handles the declared type.
package normalisers
