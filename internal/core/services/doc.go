// Package services implements the driving port interfaces.
// Services hold the indexing, query composition and retrieval logic and
// orchestrate calls to driven ports (adapters).
package services
