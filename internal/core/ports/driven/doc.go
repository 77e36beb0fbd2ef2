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
//   - RecordSource: Searches the land registry for an owner's records
//   - RecordNormaliser: Maps raw records to Documents
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextExtractor: Supplies instrument text (PDF/OCR). Without it, matching
//     falls back to name-only heuristics.
//   - SignalExtractor: Recovers structured fields from instrument text.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
