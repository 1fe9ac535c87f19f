// Package storage persists the reconstructed symbol graph. Identity
// assignment is the store's job: the first time a qualified name is
// collected it receives a positive stable id, and every later collection
// of the same name returns that same id. Id 0 always means "rejected".
package storage

import "clrindex/internal/graph"

// Store accepts symbol and reference records from a graph-building run.
// CollectSymbol and CollectReference must serialize identity assignment if
// ever called from concurrent sessions.
type Store interface {
	// CollectSymbol records a declaration and returns its identity, or 0
	// to signal rejection. Collecting an already-known qualified name
	// returns the existing identity without creating a second record.
	CollectSymbol(name string, kind graph.SymbolKind, prefix, postfix string) int64

	// CollectReference records a typed edge between two stored
	// declarations. Both ids must be positive.
	CollectReference(sourceID, targetID int64, kind graph.ReferenceKind) bool

	// Counts reports the number of stored symbols and references.
	Counts() (symbols, references int64, err error)

	Close() error
}
