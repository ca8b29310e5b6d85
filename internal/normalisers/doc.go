// Package normalisers converts raw files into document drafts for
// ingestion. Each normaliser knows how to extract a title and readable
// content from a specific file format.
//
// Normalisers are registered with the Registry at startup; the watch
// and add commands pick one by file extension.
package normalisers
