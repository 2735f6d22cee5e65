// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Classifier: Detects the document type and adaptive parameters
//   - MetadataExtractor: Extracts document-level metadata
//   - PostProcessorPipeline: Segments, annotates and scores chunks
//   - IDGenerator: Issues 17-digit document identifiers
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Statistics-only run journal. Without it, history is disabled.
//   - NormaliserRegistry: File decoding. Without it, only raw text input is accepted.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
