package storage

import "clrindex/internal/graph"

// MemoryStore is a map-backed Store used by tests and dry runs. Records
// are kept in insertion order so assertions can follow discovery order.
type MemoryStore struct {
	nextID  int64
	ids     map[string]int64
	symbols []graph.Declaration
	refs    []graph.Reference
	refSeen map[graph.Reference]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		ids:     make(map[string]int64),
		refSeen: make(map[graph.Reference]bool),
	}
}

func (s *MemoryStore) CollectSymbol(name string, kind graph.SymbolKind, prefix, postfix string) int64 {
	if name == "" {
		return 0
	}
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := s.nextID
	s.nextID++
	s.ids[name] = id
	s.symbols = append(s.symbols, graph.Declaration{
		QualifiedName:    name,
		Kind:             kind,
		SignaturePrefix:  prefix,
		SignaturePostfix: postfix,
	})
	return id
}

func (s *MemoryStore) CollectReference(sourceID, targetID int64, kind graph.ReferenceKind) bool {
	if sourceID <= 0 || targetID <= 0 {
		return false
	}
	ref := graph.Reference{SourceID: sourceID, TargetID: targetID, Kind: kind}
	if s.refSeen[ref] {
		return true
	}
	s.refSeen[ref] = true
	s.refs = append(s.refs, ref)
	return true
}

func (s *MemoryStore) Counts() (int64, int64, error) {
	return int64(len(s.symbols)), int64(len(s.refs)), nil
}

func (s *MemoryStore) Close() error { return nil }

// Symbols returns the stored declarations in insertion order.
func (s *MemoryStore) Symbols() []graph.Declaration { return s.symbols }

// References returns the stored edges in insertion order.
func (s *MemoryStore) References() []graph.Reference { return s.refs }

// SymbolID returns the identity assigned to a qualified name, or 0.
func (s *MemoryStore) SymbolID(name string) int64 { return s.ids[name] }

// SymbolByID returns the stored declaration with the given identity.
func (s *MemoryStore) SymbolByID(id int64) (graph.Declaration, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(s.symbols) {
		return graph.Declaration{}, false
	}
	return s.symbols[idx], true
}
