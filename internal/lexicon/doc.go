// Package lexicon holds the immutable vocabulary used to classify, segment,
// annotate and score French legal documents.
//
// The vocabulary is an embedded TOML file parsed once with Load and then
// passed explicitly to the classifier, the extractor and the post-processors.
// A Lexicon is read-only after Load and safe for concurrent use.
//
// Matching is accent- and case-insensitive: both terms and text go through
// Fold, and CountTerm only counts whole-word or whole-phrase occurrences.
package lexicon
