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
//   - DocumentStore: Document persistence and schema evolution
//   - Embedder / EmbeddingService: Turns text into vectors
//   - SnapshotStore: Persists the last retrieval snapshot
//   - ConfigStore: Application configuration
//   - Normaliser / NormaliserRegistry: Extracts text from uploaded files
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextGenerator: Writes tailored letters. Without it, tailoring is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
