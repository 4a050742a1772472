// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Document persistence with scoped write sessions
//   - SearchEngine: Read-only ranked full-text search (SQLite FTS5)
//   - Extractor: Pulls plain text out of one file type
//   - ExtractorRegistry: Selects the extractor for a path
//   - VisionService: Turns an image plus an instruction into text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - callers fall back to built-in defaults:
//
//   - PromptStore: User-editable prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
