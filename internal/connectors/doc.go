// Package connectors holds the sources that feed files to the indexer.
// Only the local filesystem is supported.
package connectors
