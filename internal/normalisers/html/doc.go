// Package html provides a Normaliser implementation for HTML documents.
// It walks the token stream, drops scripts and styles, ends lines on
// block elements and writes table rows as pipe-separated lines.
package html
